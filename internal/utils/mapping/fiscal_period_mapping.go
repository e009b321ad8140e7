package mapping

import (
	"github.com/acmeerp/ledger_core/internal/core/domain"
	"github.com/acmeerp/ledger_core/internal/models"
)

// ToModelFiscalPeriod converts a domain FiscalPeriod to a model FiscalPeriod
func ToModelFiscalPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		PeriodID:    d.PeriodID,
		TenantID:    d.TenantID,
		Name:        d.Name,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalPeriod converts a model FiscalPeriod to a domain FiscalPeriod
func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:    m.PeriodID,
		TenantID:    m.TenantID,
		Name:        m.Name,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Status:      domain.PeriodStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTenant converts a domain Tenant to a model Tenant
func ToModelTenant(d domain.Tenant) models.Tenant {
	return models.Tenant{
		TenantID:            d.TenantID,
		Name:                d.Name,
		DefaultCurrencyCode: d.DefaultCurrencyCode,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTenant converts a model Tenant to a domain Tenant
func ToDomainTenant(m models.Tenant) domain.Tenant {
	return domain.Tenant{
		TenantID:            m.TenantID,
		Name:                m.Name,
		DefaultCurrencyCode: m.DefaultCurrencyCode,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}
