package model

import "strings"

// Known log tags.
const (
	TagRuntime          = "runtime"
	TagRuntimeWelcome   = "runtime.welcome"
	TagRuntimeException = "runtime.exception"
	TagRuntimeSourceMap = "runtime.sourcemap"
	TagCDPSend          = "cdp.send"
	TagCDPReceive       = "cdp.receive"
	TagDAPSend          = "dap.send"
	TagDAPReceive       = "dap.receive"
)

// ProtocolTags are the tags whose metadata carries a protocol message.
var ProtocolTags = []string{TagCDPReceive, TagCDPSend, TagDAPSend, TagDAPReceive}

// Family is the protocol family of a record.
type Family string

const (
	FamilyNone Family = ""
	FamilyCDP  Family = "cdp"
	FamilyDAP  Family = "dap"
)

// ParseFamily accepts "cdp" or "dap" in any case.
func ParseFamily(s string) (Family, bool) {
	switch Family(strings.ToLower(strings.TrimSpace(s))) {
	case FamilyCDP:
		return FamilyCDP, true
	case FamilyDAP:
		return FamilyDAP, true
	}
	return FamilyNone, false
}

// Label returns the upper-case display name of the family.
func (f Family) Label() string {
	return strings.ToUpper(string(f))
}

// IsProtocolTag reports whether tag is one of ProtocolTags.
func IsProtocolTag(tag string) bool {
	for _, t := range ProtocolTags {
		if t == tag {
			return true
		}
	}
	return false
}
