package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/salespilot/backoffice/internal/report"
)

// NotificationsSource is the slice of the report service the summary needs.
type NotificationsSource interface {
	GetNotifications(ctx context.Context) (report.Notifications, error)
}

// StartDailyAlertSummary emails one digest per day just before midnight.
// Runs until the process exits.
func StartDailyAlertSummary(mailer *Mailer, source NotificationsSource, logger *zap.Logger) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(24 * time.Hour)
		}
		time.Sleep(time.Until(next))
		SendAlertSummary(mailer, source, logger)
	}
}

// SendAlertSummary evaluates the notification selector once and mails the
// result. Nothing is sent when both alert lists are empty.
func SendAlertSummary(mailer *Mailer, source NotificationsSource, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	n, err := source.GetNotifications(ctx)
	if err != nil {
		logger.Error("alert summary aborted", zap.Error(err))
		return
	}
	if len(n.InventoryAlerts) == 0 && len(n.RevenueAlerts) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString("<h2>Daily Alert Summary</h2>")

	if len(n.InventoryAlerts) > 0 {
		sb.WriteString("<h3>Inventory</h3><ul>")
		for _, a := range n.InventoryAlerts {
			sb.WriteString(fmt.Sprintf("<li>%s: %d available</li>", a.ProductName, a.AvailableStock))
		}
		sb.WriteString("</ul>")
	}

	if len(n.RevenueAlerts) > 0 {
		sb.WriteString("<h3>Revenue</h3><ul>")
		for _, a := range n.RevenueAlerts {
			sb.WriteString(fmt.Sprintf("<li>%s: %s (report %s)</li>", a.ProductName, a.Revenue.StringFixed(2), a.ReportDate))
		}
		sb.WriteString("</ul>")
	}

	mailer.Send("Daily Alert Summary", sb.String())
	logger.Info("alert summary sent",
		zap.Int("inventory_alerts", len(n.InventoryAlerts)),
		zap.Int("revenue_alerts", len(n.RevenueAlerts)),
	)
}
