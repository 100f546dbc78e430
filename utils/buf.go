package utils

import (
	"encoding/binary"
	"fmt"

	"github.com/PolyhedraZK/bpgadgets/zkerr"
)

// ErrShortBuffer is returned when a read would cross the end of an InputBuf.
var ErrShortBuffer = fmt.Errorf("%w: short buffer", zkerr.ErrDeserialization)

type OutputBuf struct {
	buf []byte
}

// NewOutputBuf returns a buffer whose backing array has room for capacity bytes.
func NewOutputBuf(capacity int) *OutputBuf {
	return &OutputBuf{buf: make([]byte, 0, capacity)}
}

func (o *OutputBuf) AppendUint8(x uint8) {
	o.buf = append(o.buf, x)
}

func (o *OutputBuf) AppendUint32(x uint32) {
	o.buf = binary.LittleEndian.AppendUint32(o.buf, x)
}

func (o *OutputBuf) AppendUint64(x uint64) {
	o.buf = binary.LittleEndian.AppendUint64(o.buf, x)
}

func (o *OutputBuf) AppendBytes(b []byte) {
	o.buf = append(o.buf, b...)
}

// PutUint32At overwrites four bytes at offset, used to back-fill length prefixes.
func (o *OutputBuf) PutUint32At(offset int, x uint32) {
	binary.LittleEndian.PutUint32(o.buf[offset:offset+4], x)
}

func (o *OutputBuf) Len() int {
	return len(o.buf)
}

func (o *OutputBuf) Bytes() []byte {
	return o.buf
}

// InputBuf reads values from a byte slice. Every read checks the remaining length first
// and never slices past the end of the input.
type InputBuf struct {
	buf []byte
}

func NewInputBuf(buf []byte) *InputBuf {
	return &InputBuf{buf: buf}
}

func (i *InputBuf) ReadUint8() (uint8, error) {
	if len(i.buf) < 1 {
		return 0, ErrShortBuffer
	}
	x := i.buf[0]
	i.buf = i.buf[1:]
	return x, nil
}

func (i *InputBuf) ReadUint32() (uint32, error) {
	if len(i.buf) < 4 {
		return 0, ErrShortBuffer
	}
	x := binary.LittleEndian.Uint32(i.buf[:4])
	i.buf = i.buf[4:]
	return x, nil
}

func (i *InputBuf) ReadUint64() (uint64, error) {
	if len(i.buf) < 8 {
		return 0, ErrShortBuffer
	}
	x := binary.LittleEndian.Uint64(i.buf[:8])
	i.buf = i.buf[8:]
	return x, nil
}

// ReadBytes returns the next n bytes. The result aliases the input.
func (i *InputBuf) ReadBytes(n int) ([]byte, error) {
	if n < 0 || len(i.buf) < n {
		return nil, ErrShortBuffer
	}
	x := i.buf[:n:n]
	i.buf = i.buf[n:]
	return x, nil
}

func (i *InputBuf) Remaining() int {
	return len(i.buf)
}

func (i *InputBuf) IsEnd() bool {
	return len(i.buf) == 0
}
