// Package actorstore ships a reference in-memory ActorStore/GlobalStore
// pair: a small built-in registry of the std.* actor classes the
// original calvin-base sample scripts exercise, and a SHA-1 based
// signature helper, grounded on the teacher's node.go content-
// fingerprint idiom (AssignStableIDs). Real deployments inject their
// own store; this one backs flowc build's default wiring and the
// compiler's own test suite.
package actorstore

import (
	"crypto/sha1" //nolint:gosec // content fingerprint, not security.
	"encoding/hex"
	"strings"

	"github.com/flowc-lang/flowc/pkg/compiler"
)

// class implements compiler.ActorClass for a fixed port list.
type class struct {
	inports  []string
	outports []string
}

func (c class) InportNames() []string  { return c.inports }
func (c class) OutportNames() []string { return c.outports }

// Store is a reference in-memory ActorStore/GlobalStore backed by a
// string-keyed registry, mirroring the registry-keyed-by-string
// pattern the teacher uses for its field-access strategies.
type Store struct {
	registry map[string]class
}

// New returns a Store pre-populated with the std.* actor classes.
func New() *Store {
	return &Store{registry: map[string]class{
		"std.Constant":   {inports: nil, outports: []string{"token"}},
		"std.Identity":   {inports: []string{"in"}, outports: []string{"out"}},
		"std.Join":       {inports: []string{"token_1", "token_2"}, outports: []string{"token"}},
		"std.Terminator": {inports: []string{"void"}, outports: nil},
	}}
}

// Register adds or replaces an actor class in the registry.
func (s *Store) Register(actorType string, inports, outports []string) {
	s.registry[actorType] = class{inports: inports, outports: outports}
}

// Lookup implements compiler.ActorStore.
func (s *Store) Lookup(actorType string) (bool, bool, compiler.ActorClass) {
	c, ok := s.registry[actorType]
	if !ok {
		return false, false, nil
	}

	return true, true, c
}

// ActorSignature implements compiler.GlobalStore by hashing
// (actor_type, inports, outports) with the teacher's SHA-1
// content-fingerprint idiom.
func (s *Store) ActorSignature(desc compiler.SignatureDescriptor) string {
	h := sha1.New() //nolint:gosec // content fingerprint, not security.
	h.Write([]byte(desc.ActorType))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(desc.Inports, ",")))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(desc.Outports, ",")))

	return hex.EncodeToString(h.Sum(nil))
}
