package codec

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

type Codec struct {
	api jsoniter.API
}

func New() Codec {
	api := jsoniter.Config{
		EscapeHTML:                    false,
		ObjectFieldMustBeSimpleString: true, // do not unescape object field
	}.Froze()

	timeType := reflect2.TypeByName("time.Time")
	tc := newTimeCodec(FullDateFormat)
	api.RegisterExtension(jsoniter.EncoderExtension{timeType: tc})
	api.RegisterExtension(jsoniter.DecoderExtension{timeType: tc})

	return Codec{
		api: api,
	}
}

func (c Codec) Decode(data []byte, valuePtr any) error {
	return c.api.Unmarshal(data, valuePtr)
}

func (c Codec) Marshal(value any) ([]byte, error) {
	return c.api.Marshal(value)
}

func (c Codec) Encode(w io.Writer, value any) error {
	stream := c.api.BorrowStream(w)
	defer c.api.ReturnStream(stream)
	stream.WriteVal(value)
	stream.Flush()
	return stream.Error
}
