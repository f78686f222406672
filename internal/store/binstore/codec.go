package binstore

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/Makepad-fr/clido/internal/model"
)

// On-disk layout of one record:
//
//	<text_len:uint32 LE><text:text_len bytes><done:uint8 0|1>
//
// There is no file header; a file is zero or more records back to back.

// Field sizes in bytes.
const (
	LenPrefixSize = 4
	FlagSize      = 1
)

// texts longer than this are read incrementally so a corrupt prefix can't
// force a 4 GiB allocation
const maxPreallocate = 64 * 1024

var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrTextTooLong     = errors.New("todo text exceeds 4294967295 bytes")
)

// EncodedSize returns the number of bytes EncodeItem writes for it.
func EncodedSize(it model.Item) int64 {
	return int64(LenPrefixSize + len(it.Text) + FlagSize)
}

// EncodeItem writes one record at the writer's current position.
// A failed or short write leaves the destination in an unknown state.
func EncodeItem(w io.Writer, it model.Item) error {
	if uint64(len(it.Text)) > math.MaxUint32 {
		return ErrTextTooLong
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(it.Text))); err != nil {
		return fmt.Errorf("write text length: %w", err)
	}
	n, err := io.WriteString(w, it.Text)
	if err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	if n != len(it.Text) {
		return fmt.Errorf("write text: %w", io.ErrShortWrite)
	}

	var flag byte
	if it.Done {
		flag = 1
	}
	if _, err := w.Write([]byte{flag}); err != nil {
		return fmt.Errorf("write done flag: %w", err)
	}
	return nil
}

// DecodeItem reads one record from r.
//
// It returns io.EOF, unwrapped, when r is exhausted exactly at a record
// boundary. Any record cut short, or carrying a done flag other than 0 or 1,
// yields an error wrapping ErrMalformedRecord. A partially read record is
// never returned.
func DecodeItem(r io.Reader) (model.Item, error) {
	var prefix [LenPrefixSize]byte
	n, err := io.ReadFull(r, prefix[:])
	switch {
	case err == io.EOF && n == 0:
		return model.Item{}, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		return model.Item{}, fmt.Errorf("%w: length prefix: %w", ErrMalformedRecord, err)
	case err != nil:
		return model.Item{}, fmt.Errorf("read length prefix: %w", err)
	}
	textLen := binary.LittleEndian.Uint32(prefix[:])

	text, err := readText(r, textLen)
	if err != nil {
		return model.Item{}, err
	}

	var flag [FlagSize]byte
	if _, err := io.ReadFull(r, flag[:]); err != nil {
		if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
			return model.Item{}, fmt.Errorf("%w: done flag: %w", ErrMalformedRecord, io.ErrUnexpectedEOF)
		}
		return model.Item{}, fmt.Errorf("read done flag: %w", err)
	}
	if flag[0] > 1 {
		return model.Item{}, fmt.Errorf("%w: done flag is %d", ErrMalformedRecord, flag[0])
	}

	return model.Item{Text: string(text), Done: flag[0] == 1}, nil
}

func readText(r io.Reader, textLen uint32) ([]byte, error) {
	if textLen <= maxPreallocate {
		text := make([]byte, textLen)
		if _, err := io.ReadFull(r, text); err != nil {
			if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: text: want %d bytes: %w", ErrMalformedRecord, textLen, io.ErrUnexpectedEOF)
			}
			return nil, fmt.Errorf("read text: %w", err)
		}
		return text, nil
	}

	var buf bytes.Buffer
	copied, err := io.Copy(&buf, io.LimitReader(r, int64(textLen)))
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	if copied != int64(textLen) {
		return nil, fmt.Errorf("%w: text: want %d bytes, got %d: %w", ErrMalformedRecord, textLen, copied, io.ErrUnexpectedEOF)
	}
	return buf.Bytes(), nil
}
