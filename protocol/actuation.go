package protocol

// MapAxis rescales a raw joystick reading onto the actuator travel
// allowed by the given sensitivity. The sensitivity shrinks the
// responsive range symmetrically around the centre point:
//
//	half = center * sensitivity / 100
//	[AxisMin..AxisMax] -> [center-half .. center+half]
//
// Sensitivity 0 collapses the output to the centre regardless of input,
// so a misconfigured zero disables movement instead of maximising it;
// sensitivity 100 spans the full actuator travel. All arithmetic is
// integer with truncating division, so boundary values round down.
func MapAxis(raw int16, sensitivity int8, center int) int {
	half := center * int(sensitivity) / 100
	if half < 0 {
		// Unset sensitivity behaves like zero.
		half = 0
	}
	low := center - half
	high := center + half
	return low + int(raw)*(high-low)/AxisMax
}
