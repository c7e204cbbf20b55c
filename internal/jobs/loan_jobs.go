package jobs

import (
	"context"
	"fmt"
	"time"

	"civdef-inventory-backend/internal/domain"
	"civdef-inventory-backend/internal/logger"
)

// SendOverdueReminders emails requesters whose approved loans are past their
// expected return date. State is never changed here; the loan stays APPROVED
// until an admin records the return.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		overdue, err := jr.requestRepo.ListOverdue(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to list overdue loans", "error", err)
			return
		}
		logger.Info("Found overdue loans", "count", len(overdue))

		for _, req := range overdue {
			user, err := jr.userRepo.GetByID(ctx, req.UserID)
			if err != nil {
				logger.Warn("Skipping overdue reminder, requester not found", "request_id", req.ID, "user_id", req.UserID, "error", err)
				continue
			}
			if err := jr.emailSvc.SendOverdueReminder(ctx, user.Email, req.ItemName, req.Quantity, *req.ReturnDate); err != nil {
				logger.Error("Failed to send overdue reminder", "request_id", req.ID, "error", err)
			}
		}
	})
}

// SendLowStockReport emails every admin a summary of items with no available
// units.
func (jr *JobRunner) SendLowStockReport() {
	jr.runWithRecovery("SendLowStockReport", func() {
		ctx := context.Background()

		items, err := jr.itemRepo.ListOutOfStock(ctx)
		if err != nil {
			logger.Error("Failed to list out-of-stock items", "error", err)
			return
		}
		if len(items) == 0 {
			logger.Info("No out-of-stock items, skipping report")
			return
		}

		lines := make([]string, 0, len(items))
		for _, item := range items {
			lines = append(lines, fmt.Sprintf("- %s (%s): %d of %d available", item.Name, item.Category, item.Available, item.Quantity))
		}

		admins, err := jr.userRepo.ListByRole(ctx, domain.RoleAdmin)
		if err != nil {
			logger.Error("Failed to list admins", "error", err)
			return
		}
		for _, admin := range admins {
			if err := jr.emailSvc.SendLowStockReport(ctx, admin.Email, lines); err != nil {
				logger.Error("Failed to send low-stock report", "admin", admin.Email, "error", err)
			}
		}
	})
}

// RunAll runs every job once, for manual execution.
func (jr *JobRunner) RunAll() {
	jr.SendOverdueReminders()
	jr.SendLowStockReport()
}
