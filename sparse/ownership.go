// SPDX-License-Identifier: MIT

package sparse

// ownership tracks how many containers reference the same index/value
// buffers. Containers built by a no-copy conversion share one ownership
// record; every mutator that replaces buffers detaches first, so a shared
// buffer is never written through by this package.
//
// The count only grows when sharing is created and only shrinks on detach;
// a container that is dropped without detaching keeps its peers marked as
// aliased (conservative).
type ownership struct {
	owners int
}

func newOwnership() *ownership { return &ownership{owners: 1} }

// share registers one more container on the same buffers.
func (o *ownership) share() *ownership {
	o.owners++
	return o
}

// shared reports whether more than one container references the buffers.
func (o *ownership) shared() bool { return o != nil && o.owners > 1 }

// detach releases the receiver's claim and returns a fresh record for the
// caller's new buffers.
func (o *ownership) detach() *ownership {
	if o != nil && o.owners > 0 {
		o.owners--
	}

	return newOwnership()
}
