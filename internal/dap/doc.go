// Package dap describes a subset of the X.511 Directory Access Protocol as
// codec descriptor tables bound to the ROS envelope.
//
// The protocol is registered under the application context 2.5.3.1 with
// the read, compare, abandon, list and search operations and the six DAP
// errors. Distinguished names are decoded as RDN sequences whose
// attribute values are open types resolved through the extension
// registry, so the value of cn decodes as a DirectoryString and the value
// of an unregistered attribute type stays opaque.
//
// Filter and the list and search results are recursive.
package dap
