package protocol

import "encoding/binary"

// ControlPacket is the single record exchanged over the radio link,
// assembled by the remote every tick and consumed read-only by the
// vehicle after validation.
//
// Wire layout (21 bytes, little-endian):
//
//	+--------+-------+--------+-------+------+---------+---------+---------------+
//	| RightX | LeftX | RightY | LeftY | Mode | ThrSens | StrSens | 10 button bytes|
//	+--------+-------+--------+-------+------+---------+---------+---------------+
//	| 2      | 2     | 2      | 2     | 1    | 1       | 1       | 10             |
//	+--------+-------+--------+-------+------+---------+---------+---------------+
//
// Field order, widths and sentinel values are the one bit-exact contract
// in the system; both nodes must agree or validation and mapping silently
// misbehave.
type ControlPacket struct {
	RightX int16 // 0..1023, Unset until sampled
	LeftX  int16
	RightY int16
	LeftY  int16

	Mode Mode

	ThrottleSensitivity int8 // 0..100 percent, Unset until configured
	SteerSensitivity    int8

	RightJoystickButton bool
	LeftJoystickButton  bool
	AckButton           bool
	BackButton          bool
	AuxButton1          bool
	AuxButton2          bool
	Brake               bool
	Honk                bool
	HeadLight           bool
	TailLight           bool
}

// NewControlPacket returns a packet with every numeric field unset and
// mode idle, the state both nodes start from.
func NewControlPacket() *ControlPacket {
	return &ControlPacket{
		RightX:              Unset,
		LeftX:               Unset,
		RightY:              Unset,
		LeftY:               Unset,
		Mode:                ModeIdle,
		ThrottleSensitivity: Unset,
		SteerSensitivity:    Unset,
	}
}

// Encode serialises p into its on-air representation.
func Encode(p *ControlPacket) []byte {
	data := make([]byte, PacketSize)
	binary.LittleEndian.PutUint16(data[0:2], uint16(p.RightX))
	binary.LittleEndian.PutUint16(data[2:4], uint16(p.LeftX))
	binary.LittleEndian.PutUint16(data[4:6], uint16(p.RightY))
	binary.LittleEndian.PutUint16(data[6:8], uint16(p.LeftY))
	data[8] = byte(p.Mode)
	data[9] = byte(p.ThrottleSensitivity)
	data[10] = byte(p.SteerSensitivity)
	for i, b := range []bool{
		p.RightJoystickButton,
		p.LeftJoystickButton,
		p.AckButton,
		p.BackButton,
		p.AuxButton1,
		p.AuxButton2,
		p.Brake,
		p.Honk,
		p.HeadLight,
		p.TailLight,
	} {
		if b {
			data[11+i] = 1
		}
	}
	return data
}

// Decode parses an on-air record. Records of the wrong length are
// rejected outright; field ranges are the business of Validate.
func Decode(data []byte) (*ControlPacket, error) {
	if len(data) != PacketSize {
		return nil, ErrBadLength
	}
	p := &ControlPacket{
		RightX:              int16(binary.LittleEndian.Uint16(data[0:2])),
		LeftX:               int16(binary.LittleEndian.Uint16(data[2:4])),
		RightY:              int16(binary.LittleEndian.Uint16(data[4:6])),
		LeftY:               int16(binary.LittleEndian.Uint16(data[6:8])),
		Mode:                Mode(int8(data[8])),
		ThrottleSensitivity: int8(data[9]),
		SteerSensitivity:    int8(data[10]),
	}
	bools := []*bool{
		&p.RightJoystickButton,
		&p.LeftJoystickButton,
		&p.AckButton,
		&p.BackButton,
		&p.AuxButton1,
		&p.AuxButton2,
		&p.Brake,
		&p.Honk,
		&p.HeadLight,
		&p.TailLight,
	}
	for i, b := range bools {
		*b = data[11+i] != 0
	}
	return p, nil
}
