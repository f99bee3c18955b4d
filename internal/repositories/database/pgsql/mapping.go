package pgsql

import (
	"github.com/ginagrosso/biblioteca/internal/core/domain"
	"github.com/ginagrosso/biblioteca/internal/models"
)

func toModelAudit(a domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

func toDomainAudit(a models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

func toModelBook(d domain.Book) models.Book {
	return models.Book{
		ISBN:            d.ISBN,
		Title:           d.Title,
		Author:          d.Author,
		Publisher:       d.Publisher,
		PublicationYear: d.PublicationYear,
		IsActive:        d.IsActive,
		AuditFields:     toModelAudit(d.AuditFields),
	}
}

func toDomainBook(m models.Book) domain.Book {
	return domain.Book{
		ISBN:            m.ISBN,
		Title:           m.Title,
		Author:          m.Author,
		Publisher:       m.Publisher,
		PublicationYear: m.PublicationYear,
		IsActive:        m.IsActive,
		AuditFields:     toDomainAudit(m.AuditFields),
	}
}

func toModelCopy(d domain.Copy) models.Copy {
	return models.Copy{
		Code:        d.Code,
		ISBN:        d.ISBN,
		State:       string(d.State),
		AcquiredAt:  d.AcquiredAt,
		Notes:       d.Notes,
		IsActive:    d.IsActive,
		AuditFields: toModelAudit(d.AuditFields),
	}
}

func toDomainCopy(m models.Copy) domain.Copy {
	return domain.Copy{
		Code:        m.Code,
		ISBN:        m.ISBN,
		State:       domain.CopyState(m.State),
		AcquiredAt:  m.AcquiredAt,
		Notes:       m.Notes,
		IsActive:    m.IsActive,
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

func toModelMember(d domain.Member) models.Member {
	return models.Member{
		MemberID:     d.MemberID,
		NationalID:   d.NationalID,
		MemberNumber: d.MemberNumber,
		Name:         d.Name,
		Email:        d.Email,
		Phone:        d.Phone,
		Address:      d.Address,
		RegisteredAt: d.RegisteredAt,
		IsActive:     d.IsActive,
		AuditFields:  toModelAudit(d.AuditFields),
	}
}

func toDomainMember(m models.Member) domain.Member {
	return domain.Member{
		MemberID:     m.MemberID,
		NationalID:   m.NationalID,
		MemberNumber: m.MemberNumber,
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		Address:      m.Address,
		RegisteredAt: m.RegisteredAt,
		IsActive:     m.IsActive,
		AuditFields:  toDomainAudit(m.AuditFields),
	}
}

func toModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:      d.LoanID,
		MemberID:    d.MemberID,
		CopyCode:    d.CopyCode,
		StartedAt:   d.StartedAt,
		DueDate:     d.DueDate,
		ReturnedAt:  d.ReturnedAt,
		Notes:       d.Notes,
		AuditFields: toModelAudit(d.AuditFields),
	}
}

// toDomainLoan normalizes the DATE column to UTC midnight, which is what
// domain.Loan.OverdueDays expects.
func toDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:      m.LoanID,
		MemberID:    m.MemberID,
		CopyCode:    m.CopyCode,
		StartedAt:   m.StartedAt,
		DueDate:     domain.CivilDate(m.DueDate, m.DueDate.Location()),
		ReturnedAt:  m.ReturnedAt,
		Notes:       m.Notes,
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

func toModelFine(d domain.Fine) models.Fine {
	return models.Fine{
		FineID:      d.FineID,
		MemberID:    d.MemberID,
		LoanID:      d.LoanID,
		Amount:      d.Amount,
		Reason:      string(d.Reason),
		Description: d.Description,
		IssuedAt:    d.IssuedAt,
		IsPaid:      d.IsPaid,
		PaidAt:      d.PaidAt,
		AuditFields: toModelAudit(d.AuditFields),
	}
}

func toDomainFine(m models.Fine) domain.Fine {
	return domain.Fine{
		FineID:      m.FineID,
		MemberID:    m.MemberID,
		LoanID:      m.LoanID,
		Amount:      m.Amount,
		Reason:      domain.FineReason(m.Reason),
		Description: m.Description,
		IssuedAt:    m.IssuedAt,
		IsPaid:      m.IsPaid,
		PaidAt:      m.PaidAt,
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

func toDomainFineSlice(ms []models.Fine) []domain.Fine {
	out := make([]domain.Fine, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomainFine(m))
	}
	return out
}

func toDomainLibrarian(m models.Librarian) domain.Librarian {
	return domain.Librarian{
		LibrarianID:  m.LibrarianID,
		Username:     m.Username,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
		AuditFields:  toDomainAudit(m.AuditFields),
	}
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func emptyIfNull(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
