package codec

import (
	"time"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
)

const (
	FullDateFormat = "2006-01-02T15:04:05.999-07:00"
)

type timeCodec struct {
	format string
}

func newTimeCodec(format string) timeCodec {
	return timeCodec{
		format: format,
	}
}

func (c timeCodec) IsEmpty(ptr unsafe.Pointer) bool {
	t := *(*time.Time)(ptr)
	return t.IsZero()
}

func (c timeCodec) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	t := *(*time.Time)(ptr)
	stream.WriteString(t.Format(c.format))
}

func (c timeCodec) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	value := iter.ReadString()
	t, err := time.Parse(c.format, value)
	if err != nil {
		iter.ReportError("decode time.Time", err.Error())
		return
	}
	*(*time.Time)(ptr) = t
}
