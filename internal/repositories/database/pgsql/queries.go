package pgsql

import (
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/ginagrosso/biblioteca/internal/core/domain"
)

const (
	tableBooks  = "books"
	tableLoans  = "loans"
	tableFines  = "fines"
	tableEvents = "circulation_events"
)

var (
	bookColumns = []any{
		"isbn", "title", "author", "publisher", "publication_year", "is_active",
		"created_at", "created_by", "last_updated_at", "last_updated_by",
	}
	loanColumns = []any{
		"loan_id", "member_id", "copy_code", "started_at", "due_date", "returned_at", "notes",
		"created_at", "created_by", "last_updated_at", "last_updated_by",
	}
	fineColumns = []any{
		"fine_id", "member_id", "loan_id", "amount", "reason", "description", "issued_at", "is_paid", "paid_at",
		"created_at", "created_by", "last_updated_at", "last_updated_by",
	}
	eventColumns = []any{
		"event_id", "event_type", "member_id", "loan_id", "copy_code", "fine_id", "isbn",
		"actor_id", "occurred_at", "payload",
	}
)

func buildListBooksQuery(filter domain.BookFilter) (string, []any, error) {
	where := make([]exp.Expression, 0, 3)
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		where = append(where, goqu.Or(
			goqu.C("isbn").ILike(pattern),
			goqu.C("title").ILike(pattern),
			goqu.C("author").ILike(pattern),
		))
	}
	if filter.ActiveOnly {
		where = append(where, goqu.C("is_active").IsTrue())
	}
	if filter.AfterISBN != "" {
		where = append(where, goqu.C("isbn").Gt(filter.AfterISBN))
	}

	ds := dialect.From(tableBooks).
		Prepared(true).
		Select(bookColumns...).
		Where(where...).
		Order(goqu.C("isbn").Asc())
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	return ds.ToSQL()
}

func buildListLoansQuery(filter domain.LoanFilter) (string, []any, error) {
	where := make([]exp.Expression, 0, 5)
	if filter.MemberID != "" {
		where = append(where, goqu.C("member_id").Eq(filter.MemberID))
	}
	if filter.CopyCode != "" {
		where = append(where, goqu.C("copy_code").Eq(filter.CopyCode))
	}
	switch filter.Status {
	case domain.LoanStatusOpen:
		where = append(where, goqu.C("returned_at").IsNull())
	case domain.LoanStatusClosed:
		where = append(where, goqu.C("returned_at").IsNotNull())
	}
	if filter.DueBefore != nil {
		where = append(where, goqu.C("due_date").Lt(filter.DueBefore.Format(time.DateOnly)))
	}
	if filter.AfterStarted != nil {
		where = append(where, goqu.L("(started_at, loan_id) < (?, ?::uuid)", *filter.AfterStarted, filter.AfterLoanID))
	}

	ds := dialect.From(tableLoans).
		Prepared(true).
		Select(loanColumns...).
		Where(where...).
		Order(goqu.C("started_at").Desc(), goqu.C("loan_id").Desc())
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	return ds.ToSQL()
}

func buildOverdueLoansQuery(dueBefore time.Time, limit int) (string, []any, error) {
	ds := dialect.From(tableLoans).
		Prepared(true).
		Select(loanColumns...).
		Where(
			goqu.C("returned_at").IsNull(),
			goqu.C("due_date").Lt(dueBefore.Format(time.DateOnly)),
		).
		Order(goqu.C("due_date").Asc(), goqu.C("loan_id").Asc())
	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	return ds.ToSQL()
}

func buildListFinesQuery(filter domain.FineFilter) (string, []any, error) {
	where := make([]exp.Expression, 0, 5)
	if filter.MemberID != "" {
		where = append(where, goqu.C("member_id").Eq(filter.MemberID))
	}
	if filter.LoanID != "" {
		where = append(where, goqu.C("loan_id").Eq(filter.LoanID))
	}
	if filter.Reason != "" {
		where = append(where, goqu.C("reason").Eq(string(filter.Reason)))
	}
	if filter.UnpaidOnly {
		where = append(where, goqu.C("is_paid").IsFalse())
	}
	if filter.AfterIssued != nil {
		where = append(where, goqu.L("(issued_at, fine_id) < (?, ?::uuid)", *filter.AfterIssued, filter.AfterFineID))
	}

	ds := dialect.From(tableFines).
		Prepared(true).
		Select(fineColumns...).
		Where(where...).
		Order(goqu.C("issued_at").Desc(), goqu.C("fine_id").Desc())
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	return ds.ToSQL()
}

func buildListEventsQuery(filter domain.EventFilter) (string, []any, error) {
	where := make([]exp.Expression, 0, 4)
	if filter.MemberID != "" {
		where = append(where, goqu.C("member_id").Eq(filter.MemberID))
	}
	if filter.LoanID != "" {
		where = append(where, goqu.C("loan_id").Eq(filter.LoanID))
	}
	if filter.CopyCode != "" {
		where = append(where, goqu.C("copy_code").Eq(filter.CopyCode))
	}
	if len(filter.Types) > 0 {
		types := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			types = append(types, string(t))
		}
		where = append(where, goqu.C("event_type").In(types))
	}

	ds := dialect.From(tableEvents).
		Prepared(true).
		Select(eventColumns...).
		Where(where...).
		Order(goqu.C("occurred_at").Desc(), goqu.C("event_id").Desc())
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	return ds.ToSQL()
}
