package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pgdesk/room-service/internal/domain"
	"github.com/pgdesk/room-service/internal/ledger"
	customError "github.com/pgdesk/room-service/pkg/errors"
	"github.com/pgdesk/room-service/pkg/utils"
)

// snapshotRooms loads the room snapshots a report will walk. A room-number
// filter narrows to a single room; an unknown room yields an empty report,
// not an error.
func (s *PaymentService) snapshotRooms(ctx context.Context, roomNumber string) ([]*domain.Room, error) {
	if roomNumber != "" {
		room, err := s.rooms.GetRoom(ctx, roomNumber)
		if err != nil {
			if be, ok := err.(*customError.BusinessError); ok && be.Code == customError.ErrCodeRoomNotFound {
				return []*domain.Room{}, nil
			}
			return nil, err
		}
		return []*domain.Room{room}, nil
	}

	rooms, err := s.roomRepo.List(ctx, domain.RoomFilter{})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return rooms, nil
}

type detailKey struct {
	guest       string
	room        string
	month       string
	paymentType string
}

// GetPaymentDetails aggregates the ledgers into one row per guest, room,
// month and payment type, applying the optional filters.
func (s *PaymentService) GetPaymentDetails(ctx context.Context, filter domain.PaymentFilter) ([]*domain.PaymentDetail, error) {
	rooms, err := s.snapshotRooms(ctx, filter.RoomNumber)
	if err != nil {
		return nil, err
	}

	var monthKey string
	if filter.Month != "" {
		key, ok := utils.NormalizeMonthFilter(filter.Month, filter.Year)
		if !ok {
			return nil, customError.WrapInvalidMonthKey(filter.Month)
		}
		monthKey = key
	}

	if filter.PaymentType != "" &&
		filter.PaymentType != domain.PaymentTypeRent &&
		filter.PaymentType != domain.PaymentTypeSecurity {
		return nil, customError.WrapInvalidPaymentType(filter.PaymentType)
	}

	aggregated := map[detailKey]*domain.PaymentDetail{}
	methods := map[detailKey][]string{}
	notes := map[detailKey][]string{}

	for _, room := range rooms {
		for _, guest := range room.Guests {
			if filter.GuestName != "" &&
				!strings.Contains(strings.ToLower(guest.Username), strings.ToLower(filter.GuestName)) {
				continue
			}

			for _, entry := range ledgerEntries(room, guest, filter.PaymentType) {
				for _, payment := range entry.history {
					if monthKey != "" && payment.Month != monthKey {
						continue
					}
					// A bare year filter matches on the covered month; a
					// month filter already folded the year in.
					if monthKey == "" && filter.Year != "" {
						if !strings.HasPrefix(payment.Month, filter.Year+"-") {
							continue
						}
					}

					key := detailKey{guest.Username, room.RoomNumber, payment.Month, entry.paymentType}
					detail, ok := aggregated[key]
					if !ok {
						detail = &domain.PaymentDetail{
							RoomNumber:    room.RoomNumber,
							RoomType:      room.RoomType,
							GuestName:     guest.Username,
							GuestPhone:    guest.Phone,
							GuestEmail:    guest.Email,
							PaymentMonth:  payment.Month,
							PaymentType:   entry.paymentType,
							PaymentAmount: decimal.Zero,
							TotalAmount:   entry.required,
						}
						aggregated[key] = detail
					}

					detail.PaymentAmount = detail.PaymentAmount.Add(payment.Amount)
					if payment.PaymentMethod != "" && !contains(methods[key], payment.PaymentMethod) {
						methods[key] = append(methods[key], payment.PaymentMethod)
					}
					if payment.Notes != "" {
						notes[key] = append(notes[key], payment.Notes)
					}

					paymentDate := payment.PaymentDate
					if detail.PaymentDate == nil || paymentDate.After(*detail.PaymentDate) {
						detail.PaymentDate = &paymentDate
					}
				}
			}
		}
	}

	details := make([]*domain.PaymentDetail, 0, len(aggregated))
	for key, detail := range aggregated {
		detail.BalanceAmount = detail.TotalAmount.Sub(detail.PaymentAmount)
		if detail.BalanceAmount.IsNegative() {
			detail.BalanceAmount = decimal.Zero
		}

		switch {
		case detail.PaymentAmount.GreaterThanOrEqual(detail.TotalAmount):
			detail.PaymentStatus = domain.PaymentStatusFull
		case detail.PaymentAmount.IsPositive():
			detail.PaymentStatus = domain.PaymentStatusPartial
		default:
			detail.PaymentStatus = domain.PaymentStatusPending
		}

		if len(methods[key]) > 0 {
			detail.PaymentMethod = strings.Join(methods[key], ", ")
		} else {
			detail.PaymentMethod = "N/A"
		}
		detail.Notes = strings.Join(notes[key], "; ")

		details = append(details, detail)
	}

	sort.Slice(details, func(i, j int) bool {
		ti, tj := time.Time{}, time.Time{}
		if details[i].PaymentDate != nil {
			ti = *details[i].PaymentDate
		}
		if details[j].PaymentDate != nil {
			tj = *details[j].PaymentDate
		}
		return ti.After(tj)
	})

	return details, nil
}

// GetOverduePayments reports every guest with an outstanding balance, the
// scopes it comes from and how long the oldest shortfall has been open.
func (s *PaymentService) GetOverduePayments(ctx context.Context, paymentType string) ([]*domain.OverdueGuest, error) {
	rooms, err := s.snapshotRooms(ctx, "")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	overdue := []*domain.OverdueGuest{}

	for _, room := range rooms {
		for _, guest := range room.Guests {
			entry := &domain.OverdueGuest{
				RoomNumber:       room.RoomNumber,
				RoomType:         room.RoomType,
				GuestName:        guest.Username,
				GuestPhone:       guest.Phone,
				GuestEmail:       guest.Email,
				TotalOutstanding: decimal.Zero,
				OverdueItems:     []domain.OverdueItem{},
			}

			if paymentType == "" || paymentType == domain.PaymentTypeRent {
				for _, month := range rentMonths(guest) {
					paid := ledger.TotalPaid(guest, month, domain.PaymentTypeRent)
					outstanding := room.RentAmount.Sub(paid)
					if !outstanding.IsPositive() {
						continue
					}
					entry.TotalOutstanding = entry.TotalOutstanding.Add(outstanding)
					entry.OverdueItems = append(entry.OverdueItems, domain.OverdueItem{
						PaymentType: domain.PaymentTypeRent,
						Month:       month,
						Outstanding: outstanding,
						TotalDue:    room.RentAmount,
						TotalPaid:   paid,
					})
					if first := earliestPaymentDate(guest.RentHistory, month); first != nil {
						if entry.LatestOverdueDate == nil || first.After(*entry.LatestOverdueDate) {
							entry.LatestOverdueDate = first
						}
					}
				}
			}

			if paymentType == "" || paymentType == domain.PaymentTypeSecurity {
				paid := ledger.TotalPaid(guest, "", domain.PaymentTypeSecurity)
				outstanding := room.SecurityDeposit.Sub(paid)
				if outstanding.IsPositive() {
					entry.TotalOutstanding = entry.TotalOutstanding.Add(outstanding)
					entry.OverdueItems = append(entry.OverdueItems, domain.OverdueItem{
						PaymentType: domain.PaymentTypeSecurity,
						Month:       "N/A",
						Outstanding: outstanding,
						TotalDue:    room.SecurityDeposit,
						TotalPaid:   paid,
					})
					if last := latestPaymentDate(guest.SecurityHistory); last != nil {
						if entry.LatestOverdueDate == nil || last.After(*entry.LatestOverdueDate) {
							entry.LatestOverdueDate = last
						}
					}
				}
			}

			if entry.TotalOutstanding.IsPositive() {
				if entry.LatestOverdueDate != nil {
					entry.DaysOverdue = int(now.Sub(*entry.LatestOverdueDate).Hours() / 24)
				}
				overdue = append(overdue, entry)
			}
		}
	}

	sort.Slice(overdue, func(i, j int) bool {
		return overdue[i].DaysOverdue > overdue[j].DaysOverdue
	})

	return overdue, nil
}

// GetPaymentAnalytics summarizes the whole ledger for the dashboard charts.
func (s *PaymentService) GetPaymentAnalytics(ctx context.Context, paymentType string) (*domain.PaymentAnalytics, error) {
	rooms, err := s.snapshotRooms(ctx, "")
	if err != nil {
		return nil, err
	}

	analytics := &domain.PaymentAnalytics{
		TotalAmount:          decimal.Zero,
		PaidAmount:           decimal.Zero,
		PendingAmount:        decimal.Zero,
		MonthlySummary:       map[string]*domain.MonthlySummary{},
		PaymentMethodSummary: map[string]*domain.MethodSummary{},
		PaymentMethodAmounts: map[string]decimal.Decimal{},
		PaymentTypeSummary:   map[string]*domain.TypeSummary{},
	}

	for _, room := range rooms {
		for _, guest := range room.Guests {
			for _, entry := range ledgerEntries(room, guest, paymentType) {
				for _, payment := range entry.history {
					analytics.TotalPayments++
					analytics.TotalAmount = analytics.TotalAmount.Add(payment.Amount)

					typeSummary, ok := analytics.PaymentTypeSummary[entry.paymentType]
					if !ok {
						typeSummary = &domain.TypeSummary{Amount: decimal.Zero}
						analytics.PaymentTypeSummary[entry.paymentType] = typeSummary
					}
					typeSummary.Count++
					typeSummary.Amount = typeSummary.Amount.Add(payment.Amount)

					method := utils.NormalizePaymentMethod(payment.PaymentMethod)
					methodSummary, ok := analytics.PaymentMethodSummary[method]
					if !ok {
						methodSummary = &domain.MethodSummary{
							Amount: decimal.Zero,
							ByType: map[string]domain.TypeSummary{},
						}
						analytics.PaymentMethodSummary[method] = methodSummary
					}
					methodSummary.Count++
					methodSummary.Amount = methodSummary.Amount.Add(payment.Amount)
					byType := methodSummary.ByType[entry.paymentType]
					byType.Count++
					byType.Amount = byType.Amount.Add(payment.Amount)
					methodSummary.ByType[entry.paymentType] = byType

					amount, ok := analytics.PaymentMethodAmounts[method]
					if !ok {
						amount = decimal.Zero
					}
					analytics.PaymentMethodAmounts[method] = amount.Add(payment.Amount)

					monthly, ok := analytics.MonthlySummary[payment.Month]
					if !ok {
						monthly = &domain.MonthlySummary{
							Amount: decimal.Zero,
							ByType: map[string]domain.TypeSummary{},
						}
						analytics.MonthlySummary[payment.Month] = monthly
					}
					monthly.Count++
					monthly.Amount = monthly.Amount.Add(payment.Amount)
					monthlyByType := monthly.ByType[entry.paymentType]
					monthlyByType.Count++
					monthlyByType.Amount = monthlyByType.Amount.Add(payment.Amount)
					monthly.ByType[entry.paymentType] = monthlyByType

					if payment.PaymentStatus == domain.PaymentStatusFull {
						analytics.PaidPayments++
						analytics.PaidAmount = analytics.PaidAmount.Add(payment.Amount)
					} else {
						analytics.PendingPayments++
						analytics.PendingAmount = analytics.PendingAmount.Add(payment.Amount)
					}
				}
			}
		}
	}

	return analytics, nil
}

// GetPendingMonthly lists guests whose rent for the current month is not yet
// fully covered.
func (s *PaymentService) GetPendingMonthly(ctx context.Context) ([]*domain.PendingMonthlyGuest, error) {
	rooms, err := s.snapshotRooms(ctx, "")
	if err != nil {
		return nil, err
	}

	month := utils.CurrentMonthKey()
	pending := []*domain.PendingMonthlyGuest{}

	for _, room := range rooms {
		for _, guest := range room.Guests {
			paid := ledger.TotalPaid(guest, month, domain.PaymentTypeRent)
			if paid.GreaterThanOrEqual(room.RentAmount) {
				continue
			}
			pending = append(pending, &domain.PendingMonthlyGuest{
				RoomNumber:   room.RoomNumber,
				RoomType:     room.RoomType,
				GuestName:    guest.Username,
				GuestPhone:   guest.Phone,
				GuestEmail:   guest.Email,
				RentAmount:   room.RentAmount,
				AmountPaid:   paid,
				PaymentMonth: month,
			})
		}
	}

	return pending, nil
}

// SendMonthlyReminders records a reminder activity for every guest with
// pending rent this month. Delivery itself belongs to the notification
// collaborator; this service only records that a reminder went out.
func (s *PaymentService) SendMonthlyReminders(ctx context.Context) (*domain.ReminderResult, error) {
	pending, err := s.GetPendingMonthly(ctx)
	if err != nil {
		return nil, err
	}

	result := &domain.ReminderResult{}
	for _, guest := range pending {
		outstanding := guest.RentAmount.Sub(guest.AmountPaid)
		activity := &domain.Activity{
			ID:           uuid.New(),
			ActivityType: domain.ActivityReminderSent,
			Description: fmt.Sprintf("Rent reminder for %s sent to %s (room %s, outstanding %s)",
				guest.PaymentMonth, guest.GuestName, guest.RoomNumber, outstanding.String()),
			RoomNumber: &guest.RoomNumber,
			GuestName:  &guest.GuestName,
			Amount:     &outstanding,
			CreatedAt:  time.Now().UTC(),
		}

		if err := s.activityRepo.Create(ctx, activity); err != nil {
			log.Printf("Failed to record reminder for %s: %v", guest.GuestName, err)
			result.Failed++
			continue
		}
		result.Sent++
	}

	return result, nil
}

// GetRecentActivities returns the newest entries in the activity feed.
func (s *PaymentService) GetRecentActivities(ctx context.Context, limit int) ([]*domain.Activity, error) {
	activities, err := s.activityRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return activities, nil
}

// ExportPaymentsCSV renders the filtered payment details as CSV.
func (s *PaymentService) ExportPaymentsCSV(ctx context.Context, filter domain.PaymentFilter) ([]byte, error) {
	details, err := s.GetPaymentDetails(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"Room Number", "Room Type", "Guest Name", "Phone", "Email",
		"Month", "Type", "Amount Paid", "Required", "Balance", "Status", "Method", "Last Payment",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, d := range details {
		lastPayment := ""
		if d.PaymentDate != nil {
			lastPayment = d.PaymentDate.Format(time.RFC3339)
		}
		record := []string{
			d.RoomNumber, d.RoomType, d.GuestName, d.GuestPhone, d.GuestEmail,
			d.PaymentMonth, d.PaymentType,
			d.PaymentAmount.String(), d.TotalAmount.String(), d.BalanceAmount.String(),
			d.PaymentStatus, d.PaymentMethod, lastPayment,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

type ledgerEntry struct {
	paymentType string
	required    decimal.Decimal
	history     []*domain.Payment
}

// ledgerEntries pairs each of a guest's histories with the room's required
// amount for that scope, optionally narrowed to one payment type.
func ledgerEntries(room *domain.Room, guest *domain.Guest, paymentType string) []ledgerEntry {
	entries := []ledgerEntry{}
	if paymentType == "" || paymentType == domain.PaymentTypeRent {
		entries = append(entries, ledgerEntry{
			paymentType: domain.PaymentTypeRent,
			required:    room.RentAmount,
			history:     guest.RentHistory,
		})
	}
	if paymentType == "" || paymentType == domain.PaymentTypeSecurity {
		entries = append(entries, ledgerEntry{
			paymentType: domain.PaymentTypeSecurity,
			required:    room.SecurityDeposit,
			history:     guest.SecurityHistory,
		})
	}
	return entries
}

// rentMonths collects every month a guest's rent ledger touches, plus the
// current month so a guest who has paid nothing yet still shows up.
func rentMonths(guest *domain.Guest) []string {
	seen := map[string]bool{}
	months := []string{}
	for _, payment := range guest.RentHistory {
		if payment.Month == "" || seen[payment.Month] {
			continue
		}
		seen[payment.Month] = true
		months = append(months, payment.Month)
	}
	if current := utils.CurrentMonthKey(); !seen[current] {
		months = append(months, current)
	}
	sort.Strings(months)
	return months
}

func earliestPaymentDate(history []*domain.Payment, month string) *time.Time {
	var earliest *time.Time
	for _, payment := range history {
		if payment.Month != month {
			continue
		}
		t := payment.PaymentDate
		if earliest == nil || t.Before(*earliest) {
			earliest = &t
		}
	}
	return earliest
}

func latestPaymentDate(history []*domain.Payment) *time.Time {
	var latest *time.Time
	for _, payment := range history {
		t := payment.PaymentDate
		if latest == nil || t.After(*latest) {
			latest = &t
		}
	}
	return latest
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
