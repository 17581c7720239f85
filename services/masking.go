package services

// MaskedFromViewer 盲复核的统一判定：双盲模式下，已完成记录对
// 非完成人遮蔽。用于线缆阶段和窗帘两次测量（m1/m2）。
func MaskedFromViewer(completed bool, completedBy, viewerID string, doubleBlind bool) bool {
	if !doubleBlind {
		return false
	}
	if !completed {
		return false
	}
	return completedBy != "" && completedBy != viewerID
}
