// Package factory generates unique test fixtures for the Web API. Every
// payload's primary-name field gets a suffix combining wall-clock
// milliseconds with a process-wide counter, so two calls in the same
// millisecond still produce distinct names.
package factory

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/samber/lo"

	"github.com/nimbleqa/xrmkit/pkg/webapi"
)

var seq atomic.Uint64

// uniqueSuffix returns a millis-plus-counter tag for primary names.
func uniqueSuffix() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixMilli(), seq.Add(1))
}

// Account builds an account payload. overrides replace the defaults;
// the primary name (default or overridden) always gets the unique
// suffix appended.
func Account(overrides webapi.Record) webapi.Record {
	rec := webapi.Record{
		"name":                "Test Account",
		"industrycode":        AccountIndustry["Consulting"],
		"customertypecode":    AccountCustomerType["Customer"],
		"telephone1":          "555-0100",
		"websiteurl":          "https://test-account.example.com",
		"creditonhold":        false,
		"description":         "Created by xrmkit test fixtures",
		"numberofemployees":   25,
		"address1_city":       "Springfield",
		"address1_postalcode": "12345",
	}
	for k, v := range overrides {
		rec[k] = v
	}
	rec["name"] = fmt.Sprintf("%v %s", rec["name"], uniqueSuffix())
	return rec
}

// Contact builds a contact payload; the primary lastname field gets the
// unique suffix.
func Contact(overrides webapi.Record) webapi.Record {
	rec := webapi.Record{
		"firstname":                  "Test",
		"lastname":                   "Contact",
		"preferredcontactmethodcode": ContactPreferredMethod["Email"],
		"emailaddress1":              "test.contact@example.com",
		"telephone1":                 "555-0101",
		"description":                "Created by xrmkit test fixtures",
	}
	for k, v := range overrides {
		rec[k] = v
	}
	rec["lastname"] = fmt.Sprintf("%v %s", rec["lastname"], uniqueSuffix())
	return rec
}

// AccountBulk returns exactly n account payloads sharing every override
// but carrying distinct primary-name suffixes.
func AccountBulk(n int, overrides webapi.Record) []webapi.Record {
	return lo.Times(n, func(int) webapi.Record {
		return Account(overrides)
	})
}

// ContactBulk is AccountBulk for contacts.
func ContactBulk(n int, overrides webapi.Record) []webapi.Record {
	return lo.Times(n, func(int) webapi.Record {
		return Contact(overrides)
	})
}

// BindParentAccount links a contact payload to its parent account.
func BindParentAccount(rec webapi.Record, accountID string) {
	webapi.Bind(rec, "parentcustomerid_account", "accounts", accountID)
}

// BindPrimaryContact links an account payload to its primary contact.
func BindPrimaryContact(rec webapi.Record, contactID string) {
	webapi.Bind(rec, "primarycontactid", "contacts", contactID)
}
