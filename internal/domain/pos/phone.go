package pos

import (
	"strings"

	"github.com/ttacon/libphonenumber"
)

const DefaultPhoneRegion = "US"

// NormalizePhone приводит номер к E.164, если его удается разобрать для региона.
// Иначе возвращается исходная строка без пробелов по краям.
func NormalizePhone(raw, region string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if region == "" {
		region = DefaultPhoneRegion
	}

	num, err := libphonenumber.Parse(trimmed, region)
	if err != nil || !libphonenumber.IsValidNumber(num) {
		return trimmed
	}

	return libphonenumber.Format(num, libphonenumber.E164)
}
