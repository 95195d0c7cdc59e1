// Package infra is the sample record schema used by the grefs CLI. It
// models a small cloud topology whose reference structure exercises
// every marker form: single, optional, attribute, list, dict, context,
// and named references.
package infra

import (
	"github.com/google/uuid"

	"github.com/graphrefs/graphrefs"
)

// Network is the root of the topology. It references nothing.
type Network struct {
	ID   uuid.UUID
	Name string
	CIDR string
}

// Gateway routes traffic out of a network.
type Gateway struct {
	ID      uuid.UUID
	Name    string
	Network graphrefs.Ref[Network]
}

// Subnet carves an address range out of a network. The gateway
// reference is optional; private subnets have none.
type Subnet struct {
	ID      uuid.UUID
	Name    string
	CIDR    string
	Network graphrefs.Ref[Network]
	Gateway *graphrefs.Ref[Gateway]
}

// SecurityGroup filters traffic within a network.
type SecurityGroup struct {
	Name         string
	Network      graphrefs.Ref[Network]
	IngressPorts []int
}

// Role is an identity that grants permissions. Functions reference its
// Arn by attribute rather than the role record itself.
type Role struct {
	Name string
	Arn  string
}

// Instance is a compute node. The region comes from deployment
// context, not from another record.
type Instance struct {
	Name         string
	InstanceType string
	Subnet       graphrefs.Ref[Subnet]
	Groups       graphrefs.RefList[SecurityGroup]
	Region       graphrefs.ContextRef `ref:"region"`
}

// LoadBalancer fans traffic out over instances, keyed by zone for
// weighted routing.
type LoadBalancer struct {
	Name        string
	Instances   graphrefs.RefList[Instance]
	ByZone      graphrefs.RefDict[string, Instance]
	Environment graphrefs.ContextRef `ref:"environment"`
}

// Function is a serverless unit that assumes a role and attaches to
// subnets.
type Function struct {
	Name    string
	Role    graphrefs.Ref[Role]
	RoleArn graphrefs.Attr[Role] `ref:"Arn"`
	Subnets graphrefs.RefList[Subnet]
}

// Endpoint exposes a load balancer under a stable address. The target
// is referenced by name and resolved against the scope.
type Endpoint struct {
	Name    string
	Network graphrefs.Ref[Network]
	Target  graphrefs.NamedRef `ref:"LoadBalancer"`
}

// Scope returns a resolution scope preloaded with every sample record
// type.
func Scope(opts ...graphrefs.ScopeOption) *graphrefs.Scope {
	s := graphrefs.NewScope(opts...)
	s.MustRegister(
		Network{},
		Gateway{},
		Subnet{},
		SecurityGroup{},
		Role{},
		Instance{},
		LoadBalancer{},
		Function{},
		Endpoint{},
	)
	return s
}
