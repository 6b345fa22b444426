package kafka

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rookmere/bird-trend-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	fakeClock := clockwork.NewFakeClockAt(time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC))
	domain.SetClock(fakeClock)
	t.Cleanup(func() { domain.SetClock(nil) })

	points := []domain.TrendPoint{
		{Year: 2005, Season: domain.SeasonSpring, Count: 1},
		{Year: 2005, Season: domain.SeasonWinter, Count: 7},
	}

	msg, err := serializeToMessage("US-NY-109", points)
	require.NoError(t, err)

	assert.Equal(t, []byte("US-NY-109"), msg.Key)
	assert.JSONEq(t,
		`[{"year":2005,"season":"spring","count":1},{"year":2005,"season":"winter","count":7}]`,
		string(msg.Value),
	)

	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "region", msg.Headers[0].Key)
	assert.Equal(t, []byte("US-NY-109"), msg.Headers[0].Value)
	assert.Equal(t, "point_count", msg.Headers[1].Key)
	assert.Equal(t, []byte("2"), msg.Headers[1].Value)
	assert.Equal(t, "produced_at", msg.Headers[2].Key)
	assert.Equal(t, []byte("2024-04-26T15:10:00Z"), msg.Headers[2].Value)
}
