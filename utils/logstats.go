package utils

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"
)

// Audit event names written in the "event" field of structured log entries
const (
	EventOrderCreated          = "order_created"
	EventOrderFailed           = "order_failed"
	EventSignatureRejected     = "signature_rejected"
	EventContributionRecorded  = "contribution_recorded"
	EventContributionDuplicate = "contribution_duplicate"
	EventPersistFailed         = "contribution_persist_failed"
)

// LogStats summarises one day of log entries
type LogStats struct {
	TotalEntries        int
	TotalErrors         int
	OrdersCreated       int
	OrdersFailed        int
	SignatureRejections int
	Recorded            int
	Duplicates          int
	PersistFailures     int
	UnreadableLines     int
	UserActivities      map[string]int
	ErrorPatterns       map[string]int
	RejectedOrders      []string
	UnrecordedPayments  []string
}

type logEntry struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	Event     string `json:"event"`
	UserID    string `json:"user_id"`
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
}

// AnalyzeLog reads JSON log lines from r
func AnalyzeLog(r io.Reader) (*LogStats, error) {
	stats := &LogStats{
		UserActivities: make(map[string]int),
		ErrorPatterns:  make(map[string]int),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry logEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			stats.UnreadableLines++
			continue
		}
		stats.TotalEntries++

		if entry.Level == "error" {
			stats.TotalErrors++
			stats.ErrorPatterns[entry.Message]++
		}
		if entry.UserID != "" {
			stats.UserActivities[entry.UserID]++
		}

		switch entry.Event {
		case EventOrderCreated:
			stats.OrdersCreated++
		case EventOrderFailed:
			stats.OrdersFailed++
		case EventSignatureRejected:
			stats.SignatureRejections++
			stats.RejectedOrders = append(stats.RejectedOrders, entry.OrderID)
		case EventContributionRecorded:
			stats.Recorded++
		case EventContributionDuplicate:
			stats.Duplicates++
		case EventPersistFailed:
			stats.PersistFailures++
			stats.UnrecordedPayments = append(stats.UnrecordedPayments, entry.PaymentID)
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read log: %w", err)
	}
	return stats, nil
}

// WriteReport prints a human readable report of stats
func WriteReport(w io.Writer, stats *LogStats, generated time.Time) {
	fmt.Fprintln(w, "\n=== Log Analysis Report ===")
	fmt.Fprintln(w, "Generated:", generated.Format("2006-01-02 15:04:05"))

	fmt.Fprintln(w, "\n1. Payment Flow:")
	fmt.Fprintf(w, "   Orders Created: %d\n", stats.OrdersCreated)
	fmt.Fprintf(w, "   Orders Failed: %d\n", stats.OrdersFailed)
	fmt.Fprintf(w, "   Contributions Recorded: %d\n", stats.Recorded)
	fmt.Fprintf(w, "   Duplicate Confirmations: %d\n", stats.Duplicates)

	fmt.Fprintln(w, "\n2. Audit:")
	fmt.Fprintf(w, "   Signature Rejections: %d\n", stats.SignatureRejections)
	for _, id := range stats.RejectedOrders {
		fmt.Fprintf(w, "     order %s\n", id)
	}
	fmt.Fprintf(w, "   Verified But Unrecorded Payments: %d\n", stats.PersistFailures)
	for _, id := range stats.UnrecordedPayments {
		fmt.Fprintf(w, "     payment %s\n", id)
	}

	fmt.Fprintln(w, "\n3. Error Statistics:")
	fmt.Fprintf(w, "   Total Entries: %d\n", stats.TotalEntries)
	fmt.Fprintf(w, "   Total Errors: %d\n", stats.TotalErrors)
	fmt.Fprintf(w, "   Unreadable Lines: %d\n", stats.UnreadableLines)

	fmt.Fprintln(w, "\n4. Most Active Users:")
	for _, e := range topCounts(stats.UserActivities, 5) {
		fmt.Fprintf(w, "   %s: %d activities\n", e.key, e.count)
	}

	fmt.Fprintln(w, "\n5. Most Common Errors:")
	for _, e := range topCounts(stats.ErrorPatterns, 5) {
		fmt.Fprintf(w, "   %s: %d occurrences\n", e.key, e.count)
	}
}

type keyCount struct {
	key   string
	count int
}

func topCounts(counts map[string]int, limit int) []keyCount {
	list := make([]keyCount, 0, len(counts))
	for k, n := range counts {
		list = append(list, keyCount{k, n})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return list[i].key < list[j].key
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list
}
