package dynamo

import (
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weekly-events/api/internal/domain"
)

func TestEventTimesStoredAsEpochSeconds(t *testing.T) {
	start := time.Date(2026, 9, 4, 10, 15, 30, 500_000_000, time.UTC)
	item, err := attributevalue.MarshalMap(&domain.Event{
		EventID: "e1",
		StartAt: start,
		EndAt:   start.Add(time.Hour),
	})
	require.NoError(t, err)

	// start_at must be numeric so the listing filter compares it against an
	// epoch value instead of variable-precision timestamp strings.
	n, ok := item["start_at"].(*types.AttributeValueMemberN)
	require.True(t, ok, "start_at should marshal as a number")
	assert.Equal(t, strconv.FormatInt(start.Unix(), 10), n.Value)

	// Sub-second precision is dropped on write, so a start time within the
	// same second as the cutoff still satisfies start_at >= cutoff.
	sameSecond, err := attributevalue.MarshalMap(&domain.Event{
		EventID: "e1",
		StartAt: start.Truncate(time.Second),
	})
	require.NoError(t, err)
	assert.Equal(t, n.Value, sameSecond["start_at"].(*types.AttributeValueMemberN).Value)
}

func TestEventTimesRoundTrip(t *testing.T) {
	start := time.Date(2026, 9, 5, 18, 0, 0, 0, time.UTC)
	item, err := attributevalue.MarshalMap(&domain.Event{EventID: "e1", StartAt: start})
	require.NoError(t, err)

	var got domain.Event
	require.NoError(t, attributevalue.UnmarshalMap(item, &got))
	assert.True(t, got.StartAt.Equal(start))
}
