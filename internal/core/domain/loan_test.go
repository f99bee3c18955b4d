package domain_test

import (
	"testing"
	"time"

	"github.com/ginagrosso/biblioteca/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestLoan_OverdueDays(t *testing.T) {
	due := date(2024, time.January, 1)

	tests := []struct {
		name  string
		loan  domain.Loan
		today time.Time
		want  int
	}{
		{
			name:  "open loan before due date",
			loan:  domain.Loan{DueDate: due},
			today: date(2023, time.December, 28),
			want:  0,
		},
		{
			name:  "open loan on due date",
			loan:  domain.Loan{DueDate: due},
			today: due.Add(23 * time.Hour),
			want:  0,
		},
		{
			name:  "open loan five days late",
			loan:  domain.Loan{DueDate: due},
			today: date(2024, time.January, 6).Add(10 * time.Hour),
			want:  5,
		},
		{
			name:  "closed loan uses return date",
			loan:  domain.Loan{DueDate: due, ReturnedAt: timePtr(date(2024, time.January, 6).Add(15 * time.Hour))},
			today: date(2024, time.March, 1),
			want:  5,
		},
		{
			name:  "closed loan returned early",
			loan:  domain.Loan{DueDate: due, ReturnedAt: timePtr(date(2023, time.December, 20))},
			today: date(2024, time.March, 1),
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.loan.OverdueDays(tt.today, time.UTC)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want > 0, tt.loan.IsOverdue(tt.today, time.UTC))
		})
	}
}

func TestLoan_OverdueDaysMonotonicWhileOpen(t *testing.T) {
	loan := domain.Loan{DueDate: date(2024, time.January, 1)}

	previous := 0
	for day := 0; day < 40; day++ {
		today := date(2023, time.December, 15).AddDate(0, 0, day)
		got := loan.OverdueDays(today, time.UTC)
		assert.GreaterOrEqual(t, got, previous)
		previous = got
	}
}

func TestLoan_OverdueDaysFrozenOnceClosed(t *testing.T) {
	loan := domain.Loan{
		DueDate:    date(2024, time.January, 1),
		ReturnedAt: timePtr(date(2024, time.January, 10)),
	}

	assert.Equal(t, 9, loan.OverdueDays(date(2024, time.January, 10), time.UTC))
	assert.Equal(t, 9, loan.OverdueDays(date(2025, time.June, 1), time.UTC))
}

func TestLoan_OverdueDaysUsesLibraryTimeZone(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	loan := domain.Loan{DueDate: date(2024, time.January, 1)}

	// 01:00 UTC on the 2nd is still the 1st in UTC-3.
	now := time.Date(2024, time.January, 2, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, loan.OverdueDays(now, loc))
	assert.Equal(t, 1, loan.OverdueDays(now, time.UTC))
}

func TestLoan_IsOpen(t *testing.T) {
	assert.True(t, domain.Loan{}.IsOpen())
	assert.False(t, domain.Loan{ReturnedAt: timePtr(time.Now())}.IsOpen())
}

func TestCopyCodeAndMemberNumber(t *testing.T) {
	assert.Equal(t, "EJ-9788478887644-001", domain.CopyCode("9788478887644", 1))
	assert.Equal(t, "EJ-9788478887644-012", domain.CopyCode("9788478887644", 12))
	assert.Equal(t, "MEM-2024-0001", domain.MemberNumber(2024, 1))
	assert.Equal(t, "MEM-2024-0002", domain.MemberNumber(2024, 2))
	assert.Equal(t, "member:2024", domain.MemberSequenceScope(2024))
	assert.Equal(t, "copy:9788478887644", domain.CopySequenceScope("9788478887644"))
}
