package factory

// Option-set code tables for the entities the factories cover. Symbolic
// names map to the integer codes the Web API expects; fixed at compile
// time, never mutated.

// AccountIndustry maps industry labels to industrycode values.
var AccountIndustry = map[string]int{
	"Accounting":             1,
	"Agriculture":            2,
	"Broadcasting":           3,
	"Brokers":                4,
	"Building Supply Retail": 5,
	"Business Services":      6,
	"Consulting":             7,
	"Consumer Services":      8,
	"Design":                 9,
	"Distributors":           10,
	"Doctors Offices":        11,
	"Education":              12,
	"Financial":              16,
	"Insurance":              20,
	"Legal Services":         22,
	"Manufacturing":          25,
	"Retail":                 29,
	"Technology":             32,
}

// AccountCustomerType maps relationship labels to customertypecode
// values.
var AccountCustomerType = map[string]int{
	"Competitor": 1,
	"Consultant": 2,
	"Customer":   3,
	"Investor":   4,
	"Partner":    5,
	"Influencer": 6,
	"Press":      7,
	"Prospect":   8,
	"Reseller":   9,
	"Supplier":   10,
	"Vendor":     11,
	"Other":      12,
}

// ContactPreferredMethod maps contact-method labels to
// preferredcontactmethodcode values.
var ContactPreferredMethod = map[string]int{
	"Any":   1,
	"Email": 2,
	"Phone": 3,
	"Fax":   4,
	"Mail":  5,
}
