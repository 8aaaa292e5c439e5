package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/thedailylaw/dailylaw-be/types"
)

// BillChange is the result of comparing a stored bill against a fresh fetch.
// Notice is an append-only markdown block; it is added to the end of the
// existing article body, never replacing earlier notices.
type BillChange struct {
	UpdateDate   string
	LatestAction *types.LatestAction
	Notice       string
}

// DetectBillChange reports whether legislative status drifted between the
// stored record and the freshly fetched one. Equal update dates mean no
// change and no side effect.
func DetectBillChange(stored types.StoredBillStatus, fresh types.CongressBill, now time.Time) (*BillChange, bool) {
	if fresh.UpdateDate == stored.UpdateDate {
		return nil, false
	}

	statusChange := ""
	freshActionText := ""
	if fresh.LatestAction != nil {
		freshActionText = fresh.LatestAction.Text
		oldAction := ""
		if stored.LatestAction != nil {
			oldAction = stored.LatestAction.Text
		}
		if oldAction != freshActionText {
			statusChange = fmt.Sprintf("\nStatus Change: %q → %q", oldAction, freshActionText)
		}
	}

	change := &BillChange{
		UpdateDate: fresh.UpdateDate,
		Notice:     buildUpdateNotice(now, stored.UpdateDate, fresh.UpdateDate, statusChange, freshActionText),
	}
	if fresh.LatestAction != nil {
		change.LatestAction = &types.LatestAction{
			Text:       fresh.LatestAction.Text,
			ActionDate: fresh.UpdateDate,
		}
	} else {
		change.LatestAction = stored.LatestAction
	}
	return change, true
}

func buildUpdateNotice(now time.Time, oldDate, newDate, statusChange, latestAction string) string {
	if latestAction == "" {
		latestAction = "No new action"
	}
	notice := fmt.Sprintf(`
---
## 🚨 UPDATE NOTICE

**Last Updated:** %s

This bill has been updated since our original analysis. Here are the latest changes:

**Previous Update Date:** %s
**Latest Update Date:** %s
%s

**Latest Action:** %s

*Our analysis reflects the most current information available as of the date above.*
`, now.UTC().Format("2006-01-02"), oldDate, newDate, statusChange, latestAction)
	return strings.TrimRight(notice, "\n") + "\n"
}
