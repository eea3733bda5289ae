package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"redemption_report/internal/domain/redemption/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockReportRepository is a mock of repository.ReportRepository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) PreviewReport(ctx context.Context, filter model.ReportFilter, limit int) ([]model.ReportRow, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReportRow), args.Error(1)
}

func (m *MockReportRepository) StreamReport(ctx context.Context, filter model.ReportFilter, limit int, fn func(model.ReportRow) error) error {
	args := m.Called(ctx, filter, limit, fn)
	return args.Error(0)
}

func (m *MockReportRepository) ListDiscountOptions(ctx context.Context, limit int) ([]model.DiscountOption, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DiscountOption), args.Error(1)
}

// MockStore is a mock of storage.Store
type MockStore struct {
	mock.Mock
	savedPath string
	savedData []byte
}

func (m *MockStore) Save(ctx context.Context, relPath string, data []byte) error {
	m.savedPath = relPath
	m.savedData = append([]byte(nil), data...)
	args := m.Called(ctx, relPath, data)
	return args.Error(0)
}

// MockNotifier is a mock of notify.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Success(title, message string) error {
	args := m.Called(title, message)
	return args.Error(0)
}

func uintPtr(v uint) *uint { return &v }
func strPtr(s string) *string { return &s }

func testRow(id uint, code string, userID *uint, email *string) model.ReportRow {
	return model.ReportRow{
		ID:           id,
		DiscountID:   5,
		Code:         code,
		DiscountType: "percentage",
		UserID:       userID,
		Email:        email,
		OrderID:      100 + id,
		AmountSaved:  decimal.RequireFromString("12.50"),
		Currency:     "USD",
		RedeemedAt:   time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC),
	}
}

// streamRows 让 StreamReport mock 把给定的行逐个回调出去
func streamRows(rows ...model.ReportRow) func(mock.Arguments) {
	return func(args mock.Arguments) {
		fn := args.Get(3).(func(model.ReportRow) error)
		for _, row := range rows {
			if err := fn(row); err != nil {
				return
			}
		}
	}
}

var exportPathPattern = regexp.MustCompile(`^exports/discount_redemptions_\d{8}_\d{4}\.csv$`)

func TestLoadPage(t *testing.T) {
	t.Run("Performs one selector query and one preview query", func(t *testing.T) {
		mockRepo := new(MockReportRepository)
		svc := NewReportService(mockRepo, new(MockStore), new(MockNotifier), "exports")

		filter := model.ReportFilter{DiscountID: uintPtr(5)}
		options := []model.DiscountOption{{ID: 5, Code: "SUMMER10", DiscountType: "percentage", Value: decimal.NewFromInt(10)}}
		rows := []model.ReportRow{testRow(2, "SUMMER10", uintPtr(9), strPtr("shopper@example.com"))}

		mockRepo.On("ListDiscountOptions", mock.Anything, 200).Return(options, nil).Once()
		mockRepo.On("PreviewReport", mock.Anything, filter, 200).Return(rows, nil).Once()

		page, err := svc.LoadPage(context.Background(), filter)

		require.NoError(t, err)
		assert.Equal(t, options, page.Discounts)
		assert.Equal(t, rows, page.Rows)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Reloading with identical filter repeats the same queries", func(t *testing.T) {
		mockRepo := new(MockReportRepository)
		svc := NewReportService(mockRepo, new(MockStore), new(MockNotifier), "exports")

		filter := model.ReportFilter{UserID: uintPtr(9)}
		rows := []model.ReportRow{testRow(1, "SUMMER10", uintPtr(9), strPtr("shopper@example.com"))}

		mockRepo.On("ListDiscountOptions", mock.Anything, 200).Return([]model.DiscountOption{}, nil).Twice()
		mockRepo.On("PreviewReport", mock.Anything, filter, 200).Return(rows, nil).Twice()

		first, err := svc.LoadPage(context.Background(), filter)
		require.NoError(t, err)
		second, err := svc.LoadPage(context.Background(), filter)
		require.NoError(t, err)

		assert.Equal(t, first.Rows, second.Rows)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Preview error is propagated", func(t *testing.T) {
		mockRepo := new(MockReportRepository)
		svc := NewReportService(mockRepo, new(MockStore), new(MockNotifier), "exports")

		mockRepo.On("ListDiscountOptions", mock.Anything, 200).Return([]model.DiscountOption{}, nil)
		mockRepo.On("PreviewReport", mock.Anything, mock.Anything, 200).Return(nil, errors.New("db down"))

		_, err := svc.LoadPage(context.Background(), model.ReportFilter{})

		assert.Error(t, err)
	})
}

func TestExport(t *testing.T) {
	t.Run("Default scope ignores the active filter", func(t *testing.T) {
		mockRepo := new(MockReportRepository)
		mockStore := new(MockStore)
		mockNotifier := new(MockNotifier)
		svc := NewReportService(mockRepo, mockStore, mockNotifier, "exports")

		activeFilter := model.ReportFilter{DiscountID: uintPtr(5)}

		// 全量导出必须用空 filter 查询，而不是预览页的筛选状态
		mockRepo.On("StreamReport", mock.Anything, model.ReportFilter{}, 5000, mock.Anything).
			Run(streamRows(testRow(1, "SUMMER10", uintPtr(9), strPtr("shopper@example.com")))).
			Return(nil)
		mockStore.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		mockNotifier.On("Success", mock.Anything, mock.Anything).Return(nil)

		relPath, err := svc.Export(context.Background(), activeFilter, ScopeAll)

		require.NoError(t, err)
		assert.Regexp(t, exportPathPattern, relPath)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Filtered scope passes the filter through", func(t *testing.T) {
		mockRepo := new(MockReportRepository)
		mockStore := new(MockStore)
		mockNotifier := new(MockNotifier)
		svc := NewReportService(mockRepo, mockStore, mockNotifier, "exports")

		filter := model.ReportFilter{DiscountID: uintPtr(5)}

		mockRepo.On("StreamReport", mock.Anything, filter, 5000, mock.Anything).
			Run(streamRows()).
			Return(nil)
		mockStore.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		mockNotifier.On("Success", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Export(context.Background(), filter, ScopeFiltered)

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Zero matching rows produce a header-only CSV and a success notification", func(t *testing.T) {
		mockRepo := new(MockReportRepository)
		mockStore := new(MockStore)
		mockNotifier := new(MockNotifier)
		svc := NewReportService(mockRepo, mockStore, mockNotifier, "exports")

		mockRepo.On("StreamReport", mock.Anything, model.ReportFilter{}, 5000, mock.Anything).
			Run(streamRows()).
			Return(nil)
		mockStore.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		mockNotifier.On("Success", "Redemption export ready", mock.Anything).Return(nil)

		_, err := svc.Export(context.Background(), model.ReportFilter{}, ScopeAll)

		require.NoError(t, err)

		records, readErr := csv.NewReader(bytes.NewReader(mockStore.savedData)).ReadAll()
		require.NoError(t, readErr)
		require.Len(t, records, 1)
		assert.Equal(t, model.CSVHeader, records[0])
		mockNotifier.AssertExpectations(t)
	})

	t.Run("Fields with commas, quotes and newlines survive a CSV round trip", func(t *testing.T) {
		mockRepo := new(MockReportRepository)
		mockStore := new(MockStore)
		mockNotifier := new(MockNotifier)
		svc := NewReportService(mockRepo, mockStore, mockNotifier, "exports")

		tricky := testRow(1, `SAVE,"BIG"`, uintPtr(9), strPtr("weird\nname@example.com"))

		mockRepo.On("StreamReport", mock.Anything, model.ReportFilter{}, 5000, mock.Anything).
			Run(streamRows(tricky)).
			Return(nil)
		mockStore.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		mockNotifier.On("Success", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Export(context.Background(), model.ReportFilter{}, ScopeAll)
		require.NoError(t, err)

		records, readErr := csv.NewReader(bytes.NewReader(mockStore.savedData)).ReadAll()
		require.NoError(t, readErr)
		require.Len(t, records, 2)
		assert.Equal(t, `SAVE,"BIG"`, records[1][1])
		assert.Equal(t, "weird\nname@example.com", records[1][3])
		assert.Equal(t, "12.50", records[1][5])
		assert.Equal(t, "2024-03-10 12:30:00", records[1][7])
	})

	t.Run("Guest redemption exports with empty user fields", func(t *testing.T) {
		mockRepo := new(MockReportRepository)
		mockStore := new(MockStore)
		mockNotifier := new(MockNotifier)
		svc := NewReportService(mockRepo, mockStore, mockNotifier, "exports")

		guest := testRow(1, "SUMMER10", nil, nil)

		mockRepo.On("StreamReport", mock.Anything, model.ReportFilter{}, 5000, mock.Anything).
			Run(streamRows(guest)).
			Return(nil)
		mockStore.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		mockNotifier.On("Success", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Export(context.Background(), model.ReportFilter{}, ScopeAll)
		require.NoError(t, err)

		records, readErr := csv.NewReader(bytes.NewReader(mockStore.savedData)).ReadAll()
		require.NoError(t, readErr)
		require.Len(t, records, 2)
		assert.Equal(t, "", records[1][2])
		assert.Equal(t, "", records[1][3])
	})

	t.Run("Storage failure fails the export and suppresses the notification", func(t *testing.T) {
		mockRepo := new(MockReportRepository)
		mockStore := new(MockStore)
		mockNotifier := new(MockNotifier)
		svc := NewReportService(mockRepo, mockStore, mockNotifier, "exports")

		mockRepo.On("StreamReport", mock.Anything, model.ReportFilter{}, 5000, mock.Anything).
			Run(streamRows()).
			Return(nil)
		mockStore.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

		_, err := svc.Export(context.Background(), model.ReportFilter{}, ScopeAll)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to store export file")
		mockNotifier.AssertNotCalled(t, "Success", mock.Anything, mock.Anything)
	})

	t.Run("Cursor failure fails the export before anything is stored", func(t *testing.T) {
		mockRepo := new(MockReportRepository)
		mockStore := new(MockStore)
		mockNotifier := new(MockNotifier)
		svc := NewReportService(mockRepo, mockStore, mockNotifier, "exports")

		mockRepo.On("StreamReport", mock.Anything, model.ReportFilter{}, 5000, mock.Anything).
			Return(errors.New("connection reset"))

		_, err := svc.Export(context.Background(), model.ReportFilter{}, ScopeAll)

		assert.Error(t, err)
		mockStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
		mockNotifier.AssertNotCalled(t, "Success", mock.Anything, mock.Anything)
	})

	t.Run("Notification failure does not fail the export", func(t *testing.T) {
		mockRepo := new(MockReportRepository)
		mockStore := new(MockStore)
		mockNotifier := new(MockNotifier)
		svc := NewReportService(mockRepo, mockStore, mockNotifier, "exports")

		mockRepo.On("StreamReport", mock.Anything, model.ReportFilter{}, 5000, mock.Anything).
			Run(streamRows()).
			Return(nil)
		mockStore.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		mockNotifier.On("Success", mock.Anything, mock.Anything).Return(errors.New("push unavailable"))

		relPath, err := svc.Export(context.Background(), model.ReportFilter{}, ScopeAll)

		assert.NoError(t, err)
		assert.NotEmpty(t, relPath)
	})

	t.Run("Notification message embeds the relative path", func(t *testing.T) {
		mockRepo := new(MockReportRepository)
		mockStore := new(MockStore)
		mockNotifier := new(MockNotifier)
		svc := NewReportService(mockRepo, mockStore, mockNotifier, "exports")

		mockRepo.On("StreamReport", mock.Anything, model.ReportFilter{}, 5000, mock.Anything).
			Run(streamRows()).
			Return(nil)
		mockStore.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		mockNotifier.On("Success", "Redemption export ready", mock.MatchedBy(func(msg string) bool {
			return strings.HasPrefix(msg, "Export finished: ") &&
				exportPathPattern.MatchString(strings.TrimPrefix(msg, "Export finished: "))
		})).Return(nil)

		relPath, err := svc.Export(context.Background(), model.ReportFilter{}, ScopeAll)

		require.NoError(t, err)
		assert.Equal(t, relPath, mockStore.savedPath)
		mockNotifier.AssertExpectations(t)
	})
}
