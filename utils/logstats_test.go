package utils

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeLog(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	t.Cleanup(func() { SetLogger(zerolog.Nop()) })

	Logger().Info().Str("event", EventOrderCreated).Str("user_id", "u1").Str("order_id", "order_1").Msg("Order created")
	Logger().Info().Str("event", EventOrderCreated).Str("user_id", "u1").Str("order_id", "order_2").Msg("Order created")
	Logger().Error().Str("event", EventOrderFailed).Str("user_id", "u2").Msg("Error creating order")
	Logger().Warn().Str("event", EventSignatureRejected).Str("order_id", "order_2").Msg("Invalid payment signature")
	Logger().Info().Str("event", EventContributionRecorded).Str("payment_id", "pay_1").Msg("Payment verified and message stored")
	Logger().Info().Str("event", EventContributionDuplicate).Str("payment_id", "pay_1").Msg("Payment already recorded")
	Logger().Error().Str("event", EventPersistFailed).Str("payment_id", "pay_9").Msg("Error storing chai message")
	LogError("Error fetching messages: %v", "timeout")
	buf.WriteString("not json\n\n")

	stats, err := AnalyzeLog(&buf)
	require.NoError(t, err)
	assert.Equal(t, 8, stats.TotalEntries)
	assert.Equal(t, 3, stats.TotalErrors)
	assert.Equal(t, 2, stats.OrdersCreated)
	assert.Equal(t, 1, stats.OrdersFailed)
	assert.Equal(t, 1, stats.SignatureRejections)
	assert.Equal(t, []string{"order_2"}, stats.RejectedOrders)
	assert.Equal(t, 1, stats.Recorded)
	assert.Equal(t, 1, stats.Duplicates)
	assert.Equal(t, []string{"pay_9"}, stats.UnrecordedPayments)
	assert.Equal(t, 1, stats.UnreadableLines)
	assert.Equal(t, 2, stats.UserActivities["u1"])

	var report strings.Builder
	WriteReport(&report, stats, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	out := report.String()
	assert.Contains(t, out, "Orders Created: 2")
	assert.Contains(t, out, "payment pay_9")
	assert.Contains(t, out, "u1: 2 activities")
}

func TestLogFileName(t *testing.T) {
	assert.Equal(t, "chai-2024-03-01.log", LogFileName(time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)))
}
