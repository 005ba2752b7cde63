// Package billing holds the billing-side domain models that feed slip
// generation: vendor contracts and account mappings, raw monthly billing
// rows, billing profiles, deposits, additional charges, split-billing
// rules and pro-rata periods.
//
// Key aggregates:
//   - Contract: one vendor contract under a company, carrying discount
//     and ERP contract codes
//   - BillingRecord: an immutable imported usage row for one UID and cycle
//   - Deposit: prepaid balance with a FIFO usage ledger
//   - SplitBillingRule: redirects portions of one account's cost to other
//     companies
//
// Profiles layer payment and account overrides per company and per
// contract; resolution order is contract profile, company profile, BP
// master, vendor defaults. The slip package consumes these models through
// the repository interfaces defined here.
package billing
