package layout

// EXIF orientation tags that require a rotation. The mirrored variants
// (2, 4, 5, 7) are treated as their rotation-only counterparts for
// dimension purposes; flipping is not applied.
const (
	orientationUpright     = 1
	orientationRotated180  = 3
	orientationRotated90CW = 6
	orientationRotated90AC = 8
)

// correctionDeg returns the counter-clockwise rotation, in degrees, that
// undoes the capture orientation described by an EXIF tag. Absent or
// unrecognized tags need no correction.
func correctionDeg(tag int) int {
	switch tag {
	case orientationRotated180:
		return 180
	case orientationRotated90CW:
		return 270
	case orientationRotated90AC:
		return 90
	}
	return 0
}

// swapsDimensions reports whether a rotation exchanges width and height.
func swapsDimensions(deg int) bool {
	return deg == 90 || deg == 270
}

// EffectiveRotation composes the capture-orientation correction with an
// explicit override. Both apply, in that order, in one rotation space,
// so a tag-6 correction (270) plus a 90 override cancels out to 0.
func EffectiveRotation(tag, overrideDeg int) int {
	return (correctionDeg(tag) + overrideDeg) % 360
}

// EffectiveSize returns the pixel dimensions after rotating by deg.
func EffectiveSize(w, h, deg int) (int, int) {
	if swapsDimensions(deg) {
		return h, w
	}
	return w, h
}
