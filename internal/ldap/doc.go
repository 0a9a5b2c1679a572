// Package ldap describes LDAPv3 (RFC 4511) messages as codec descriptor
// tables and registers them as the "ldap" protocol.
//
// The root type is LDAPMessage:
//
//	LDAPMessage ::= SEQUENCE {
//	    messageID       MessageID,
//	    protocolOp      CHOICE { ... },
//	    controls        [0] Controls OPTIONAL
//	}
//
// protocolOp is selected by the APPLICATION tag number through the
// operation table, so every request and response of RFC 4511 is an
// operation keyed by its tag. Results reuse LDAPResult in place.
//
// Filter is recursive and declared through a type reference:
//
//	// (&(objectClass=person)(!(uid=alice)))
//	and [0] { equalityMatch [3] {...}, not [2] { equalityMatch [3] {...} } }
//
// Control values and extended operation values are open types keyed by
// controlType and requestName. The paged results, server side sort,
// persistent search and password modify values are registered as
// extensions; other OIDs decode as opaque octets.
//
// # References
//
//   - RFC 4511: LDAP Protocol
//   - RFC 2696: Simple Paged Results Control
//   - RFC 2891: Server Side Sorting
//   - RFC 3062: Password Modify Extended Operation
//   - RFC 4532: Who am I? Operation
package ldap
