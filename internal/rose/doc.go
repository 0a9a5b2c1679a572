// Package rose dispatches remote-operation PDUs to per-operation decoders.
//
// A protocol is registered as a Registration: an application-context OID,
// a name, the operation and error tables, and optionally the root message
// type. Without a root type the X.880 ROS envelope
// (invoke/returnResult/returnError/reject) is bound to the tables.
//
// Codes are local integers or global OIDs. An operation has an argument
// and a result type; an error has a parameter type. Unregistered codes are
// never fatal: the value is kept as opaque bytes with an
// UnknownOperationCode or UnknownErrorCode anomaly.
//
// TagDispatch covers envelopes that select the operation by the tag
// number of an APPLICATION element, as LDAP does.
package rose
