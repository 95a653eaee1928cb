package codec_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/txix-open/restx/codec"
)

type payload struct {
	Name      string    `json:"name"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"createdAt"`
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	c := codec.New()
	createdAt := time.Date(2024, 5, 7, 12, 30, 15, 0, time.UTC)
	in := payload{
		Name:      "first",
		Count:     3,
		CreatedAt: createdAt,
	}

	data, err := c.Marshal(in)
	require.NoError(err)

	out := payload{}
	err = c.Decode(data, &out)
	require.NoError(err)
	require.Equal(in.Name, out.Name)
	require.Equal(in.Count, out.Count)
	require.True(in.CreatedAt.Equal(out.CreatedAt))
}

func TestTimeFormat(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	c := codec.New()
	data, err := c.Marshal(time.Date(2024, 5, 7, 12, 30, 15, 0, time.UTC))
	require.NoError(err)
	require.Equal(`"2024-05-07T12:30:15+00:00"`, string(data))
}

func TestEncode(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	c := codec.New()
	buff := bytes.Buffer{}
	err := c.Encode(&buff, map[string]int{"a": 1})
	require.NoError(err)
	require.Equal(`{"a":1}`, buff.String())
}

func TestDecodeError(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	c := codec.New()
	out := payload{}
	err := c.Decode([]byte("not a json"), &out)
	require.Error(err)
}
