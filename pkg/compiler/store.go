package compiler

// ActorClass exposes the port names of a resolved actor type.
type ActorClass interface {
	InportNames() []string
	OutportNames() []string
}

// ActorStore resolves an actor-class name to its class description.
// The core only consults it read-only, during ManifestEmitter.
type ActorStore interface {
	Lookup(actorType string) (found bool, isActor bool, class ActorClass)
}

// SignatureDescriptor is the input to GlobalStore.ActorSignature: an
// actor type together with the port names resolved for it.
type SignatureDescriptor struct {
	IsPrimitive bool
	ActorType   string
	Inports     []string
	Outports    []string
}

// GlobalStore computes an opaque, deterministic signature string for an
// actor class descriptor. The core treats the result as opaque.
type GlobalStore interface {
	ActorSignature(desc SignatureDescriptor) string
}
