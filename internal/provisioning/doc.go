// Package provisioning implements the project onboarding workflow as a
// compensating-transaction saga.
//
// A [Saga] walks an ordered step table — availability check, project
// creation, propagation wait, API enablement, billing-permission probe,
// billing linkage, access grants — awaiting each remote call before the next
// begins. Steps that commit external state register a compensating action;
// any later failure unwinds the stack (currently: delete the project) so no
// half-configured project is left behind. The one value returned to the
// caller is an [Outcome]; remote failures never surface as Go errors from
// [Saga.Provision], only local request-validation failures do.
//
// # Core Types
//
// Request is the immutable per-submission input. Step pairs a forward action
// with an optional compensation. Observer receives step-transition events
// and never influences control flow.
package provisioning
