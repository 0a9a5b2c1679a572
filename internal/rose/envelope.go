package rose

import (
	"github.com/KilimcininKorOglu/berx/internal/ber"
	"github.com/KilimcininKorOglu/berx/internal/codec"
)

var (
	generalProblems = map[int64]string{
		0: "unrecognizedPDU",
		1: "mistypedPDU",
		2: "badlyStructuredPDU",
	}
	invokeProblems = map[int64]string{
		0: "duplicateInvocation",
		1: "unrecognizedOperation",
		2: "mistypedArgument",
		3: "resourceLimitation",
		4: "releaseInProgress",
		5: "unrecognizedLinkedId",
		6: "linkedResponseUnexpected",
		7: "unexpectedLinkedOperation",
	}
	returnResultProblems = map[int64]string{
		0: "unrecognizedInvocation",
		1: "resultResponseUnexpected",
		2: "mistypedResult",
	}
	returnErrorProblems = map[int64]string{
		0: "unrecognizedInvocation",
		1: "errorResponseUnexpected",
		2: "unrecognizedError",
		3: "unexpectedError",
		4: "mistypedParameter",
	}
)

// Code returns Code ::= CHOICE { local INTEGER, global OBJECT IDENTIFIER }.
func Code() *codec.Choice {
	return codec.NewChoice("Code",
		codec.F("local", codec.Integer()),
		codec.F("global", codec.ObjectIdentifier()),
	)
}

// InvokeID returns InvokeId ::= CHOICE { present INTEGER, absent NULL }.
func InvokeID() *codec.Choice {
	return codec.NewChoice("InvokeId",
		codec.F("present", codec.Integer()),
		codec.F("absent", codec.Null()),
	)
}

// Envelope returns the X.880 ROS PDU type bound to p's tables.
func Envelope(p *Protocol) codec.Type {
	invoke := codec.NewSequence("Invoke",
		codec.F("invokeId", InvokeID()),
		codec.F("linkedId", codec.Integer()).Implicit(ber.Ctx(0)).Optional(),
		codec.F("opcode", Code()).Identifier(),
		codec.F("argument", &outcome{p: p, role: RoleInvoke}).Optional(),
	)

	returnResult := codec.NewSequence("ReturnResult",
		codec.F("invokeId", InvokeID()),
		codec.F("result", codec.NewSequence("ReturnResultBody",
			codec.F("opcode", Code()).Identifier(),
			codec.F("result", &outcome{p: p, role: RoleResult}),
		)).Optional(),
	)

	returnError := codec.NewSequence("ReturnError",
		codec.F("invokeId", InvokeID()),
		codec.F("errcode", Code()).Identifier(),
		codec.F("parameter", &outcome{p: p, role: RoleError}).Optional(),
	)

	reject := codec.NewSequence("Reject",
		codec.F("invokeId", InvokeID()),
		codec.F("problem", codec.NewChoice("RejectProblem",
			codec.F("general", codec.Integer(generalProblems)).Implicit(ber.Ctx(0)),
			codec.F("invoke", codec.Integer(invokeProblems)).Implicit(ber.Ctx(1)),
			codec.F("returnResult", codec.Integer(returnResultProblems)).Implicit(ber.Ctx(2)),
			codec.F("returnError", codec.Integer(returnErrorProblems)).Implicit(ber.Ctx(3)),
		)),
	)

	return codec.NewChoice("ROS",
		codec.F("invoke", invoke).Implicit(ber.Ctx(1)),
		codec.F("returnResult", returnResult).Implicit(ber.Ctx(2)),
		codec.F("returnError", returnError).Implicit(ber.Ctx(3)),
		codec.F("reject", reject).Implicit(ber.Ctx(4)),
	)
}
