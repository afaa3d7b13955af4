package protocol

// Validate checks every numeric field of p against its declared range.
// Unset (-1) is a permitted value everywhere except the mode field. A
// nil result means the whole packet may be committed; any error means
// the whole packet must be discarded, never partially applied.
//
// Boolean fields have no invalid encoding and are accepted as-is.
func Validate(p *ControlPacket) error {
	axes := []struct {
		name  string
		value int16
	}{
		{"rightX", p.RightX},
		{"rightY", p.RightY},
		{"leftX", p.LeftX},
		{"leftY", p.LeftY},
	}
	for _, a := range axes {
		if a.value < Unset || a.value > AxisMax {
			return &FieldError{Field: a.name, Value: int(a.value)}
		}
	}

	if !p.Mode.ValidOnWire() {
		return &FieldError{Field: "mode", Value: int(p.Mode)}
	}

	if p.ThrottleSensitivity < Unset || p.ThrottleSensitivity > SensitivityMax {
		return &FieldError{Field: "throttleSensitivity", Value: int(p.ThrottleSensitivity)}
	}
	if p.SteerSensitivity < Unset || p.SteerSensitivity > SensitivityMax {
		return &FieldError{Field: "steerSensitivity", Value: int(p.SteerSensitivity)}
	}

	return nil
}
