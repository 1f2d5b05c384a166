package nestarr

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/nestarr/nestarr/internal/identity"
	"github.com/nestarr/nestarr/internal/kernels"
)

// NodeError wraps a kernels.Error with the call-site context spec §7
// describes: "callers translate to a host-appropriate exception carrying
// the classname of the failing node and the identity (if any) at the
// failure site." Wrapping (not replacing) the underlying kernels.Error
// keeps errors.As able to recover the structured record.
type NodeError struct {
	Classname string
	Identity  string // String() of the attached identity, if any
	cause     *kernels.Error
}

func (e *NodeError) Error() string {
	if e.Identity != "" {
		return fmt.Sprintf("%s: %s [id=%s]", e.Classname, e.cause.Error(), e.Identity)
	}
	return fmt.Sprintf("%s: %s", e.Classname, e.cause.Error())
}

// Unwrap exposes the underlying kernels.Error to errors.As/errors.Is.
func (e *NodeError) Unwrap() error { return e.cause }

// wrapErr attaches node classname/identity context to a kernel-level
// failure, per spec §7's propagation rule ("errors from kernels bubble up
// the recursion unchanged; each frame may add context").
func wrapErr(classname string, id *identity.Identity, cause *kernels.Error) error {
	if cause == nil {
		return nil
	}
	ne := &NodeError{Classname: classname, cause: cause}
	if id != nil {
		ne.Identity = id.String()
	}
	return errors.WithStack(ne)
}

// AsKernelError recovers the structured kernels.Error from a (possibly
// wrapped) node error, or reports ok=false if err doesn't carry one.
func AsKernelError(err error) (*kernels.Error, bool) {
	var ne *NodeError
	if errors.As(err, &ne) {
		return ne.cause, true
	}
	return nil, false
}
