package dongle

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/ystepanoff/carlink/protocol"
)

// Serial line framing. The dongle forwards radio records verbatim; the
// serial link itself is byte-oriented, so each record is wrapped as
//
//	Length(1) | Payload(0-32) | CRC32(4, little-endian) | Terminal(1)
//
// Length counts everything after the length byte. A fixed terminal byte
// plus the CRC let the scanner resynchronise after line noise.
const (
	lengthFieldSize = 1
	crcSize         = 4
	terminalSize    = 1

	frameOverhead = crcSize + terminalSize
	maxFrameSize  = lengthFieldSize + protocol.MaxPayloadSize + frameOverhead

	frameTerminal = 0x55
)

func encodeFrame(payload []byte) []byte {
	bodyLen := len(payload) + frameOverhead
	data := make([]byte, lengthFieldSize+bodyLen)
	data[0] = byte(bodyLen)
	copy(data[lengthFieldSize:], payload)

	crcPos := lengthFieldSize + len(payload)
	binary.LittleEndian.PutUint32(data[crcPos:crcPos+crcSize], crc32.ChecksumIEEE(payload))
	data[len(data)-1] = frameTerminal
	return data
}

// scanner reassembles frames from a serial byte stream, skipping garbage
// until a plausible length byte lines up with a valid CRC and terminal.
type scanner struct {
	buf []byte
}

func (s *scanner) feed(data []byte) {
	s.buf = append(s.buf, data...)
}

// next extracts the next complete frame's payload, or returns false if
// the buffer holds no complete valid frame yet.
func (s *scanner) next() ([]byte, bool) {
	for {
		if len(s.buf) < lengthFieldSize+frameOverhead {
			return nil, false
		}

		bodyLen := int(s.buf[0])
		if bodyLen < frameOverhead || bodyLen > protocol.MaxPayloadSize+frameOverhead {
			s.skip()
			continue
		}
		if len(s.buf) < lengthFieldSize+bodyLen {
			// Could be a frame still in flight; wait for more bytes.
			return nil, false
		}

		frame := s.buf[:lengthFieldSize+bodyLen]
		if frame[len(frame)-1] != frameTerminal {
			s.skip()
			continue
		}

		payloadLen := bodyLen - frameOverhead
		payload := frame[lengthFieldSize : lengthFieldSize+payloadLen]
		crcPos := lengthFieldSize + payloadLen
		wantCRC := binary.LittleEndian.Uint32(frame[crcPos : crcPos+crcSize])
		if crc32.ChecksumIEEE(payload) != wantCRC {
			s.skip()
			continue
		}

		out := make([]byte, payloadLen)
		copy(out, payload)
		s.buf = s.buf[lengthFieldSize+bodyLen:]
		return out, true
	}
}

// skip drops one byte and lets the scanner hunt for the next frame start.
func (s *scanner) skip() {
	s.buf = s.buf[1:]
}
