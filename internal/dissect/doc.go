// Package dissect wires protocol modules, configuration, logging and
// metrics around the decoding engine.
//
// A Dissector is built once from a set of modules. Building runs every
// module's registration against fresh codec and rose builders, freezes
// both registries and then serves decodes concurrently:
//
//	d, err := dissect.New(cfg, dissect.Builtin(), dissect.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	res := d.Decode("ldap", packet, 0)
//	for _, a := range res.Anomalies {
//	    fmt.Println(a)
//	}
//
// Protocols are addressed by registration name or application-context
// OID. Unknown identifiers decode as bare ROS PDUs.
package dissect
