package nbt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"iter"
	"sync"

	"github.com/google/uuid"
)

// Operation determines how an attribute modifier combines with the base
// value of the stat it targets.
type Operation int32

const (
	// OperationAddNumber adds the amount to the base value.
	OperationAddNumber Operation = iota
	// OperationMultiplyPercentage multiplies the base value by the amount,
	// stacking multiplicatively with other modifiers.
	OperationMultiplyPercentage
	// OperationAddPercentage adds the amount as a fraction of the base
	// value.
	OperationAddPercentage
)

// operations is the closed set of defined operations.
var operations = [...]Operation{OperationAddNumber, OperationMultiplyPercentage, OperationAddPercentage}

// ErrCorruptOperation is wrapped by OperationByID when a stored operation id
// matches no defined variant. It signals corrupt persisted data, distinct
// from an absent field.
var ErrCorruptOperation = errors.New("nbt: corrupt operation id")

// ID returns the numeric id the operation is stored under.
func (op Operation) ID() int32 {
	return int32(op)
}

// String returns the string representation of Operation.
func (op Operation) String() string {
	switch op {
	case OperationAddNumber:
		return "AddNumber"
	case OperationMultiplyPercentage:
		return "MultiplyPercentage"
	case OperationAddPercentage:
		return "AddPercentage"
	default:
		return fmt.Sprintf("Operation(%d)", int32(op))
	}
}

// OperationByID returns the operation stored under the given id. Ids outside
// the defined set report an error wrapping ErrCorruptOperation.
func OperationByID(id int32) (Operation, error) {
	// Linear scan is plenty for three variants.
	for _, op := range operations {
		if op.ID() == id {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: %d", ErrCorruptOperation, id)
}

// AttributeType is an interned descriptor for a stat an attribute modifier
// may target, such as "generic.maxHealth". Values are singletons obtained
// through RegisterAttributeType or AttributeTypeByName and may be compared
// by pointer.
type AttributeType struct {
	name string
}

// Name returns the symbolic stat name of the type.
func (t *AttributeType) Name() string {
	return t.name
}

// attributeTypes is the process-wide registry of attribute types. sync.Map
// keeps reads lock-free on the hot path while LoadOrStore makes concurrent
// first registrations of the same name converge on a single instance.
var attributeTypes sync.Map // map[string]*AttributeType

// Built-in attribute types, pre-registered at process start.
var (
	AttributeMaxHealth           = RegisterAttributeType("generic.maxHealth")
	AttributeFollowRange         = RegisterAttributeType("generic.followRange")
	AttributeAttackDamage        = RegisterAttributeType("generic.attackDamage")
	AttributeMovementSpeed       = RegisterAttributeType("generic.movementSpeed")
	AttributeKnockbackResistance = RegisterAttributeType("generic.knockbackResistance")
)

// RegisterAttributeType registers an attribute type under the given symbolic
// name and returns its singleton descriptor. Registration is idempotent: if
// the name is already registered, the previously registered descriptor is
// returned and nothing is overwritten.
//
// Concurrency:
// This function is fully thread-safe and may be called from any goroutine,
// including racing first-use registrations of the same name.
func RegisterAttributeType(name string) *AttributeType {
	if existing, ok := attributeTypes.Load(name); ok {
		return existing.(*AttributeType)
	}
	actual, _ := attributeTypes.LoadOrStore(name, &AttributeType{name: name})
	return actual.(*AttributeType)
}

// AttributeTypeByName returns the registered type for a symbolic name.
// Unregistered names report false; they are not an error.
//
// Concurrency:
// This function is fully thread-safe.
func AttributeTypeByName(name string) (*AttributeType, bool) {
	if t, ok := attributeTypes.Load(name); ok {
		return t.(*AttributeType), true
	}
	return nil, false
}

// AttributeTypes returns an iterator over every registered attribute type,
// in unspecified order.
func AttributeTypes() iter.Seq[*AttributeType] {
	return func(yield func(*AttributeType) bool) {
		attributeTypes.Range(func(_, value any) bool {
			return yield(value.(*AttributeType))
		})
	}
}

// Compound keys of the attribute record.
const (
	keyAmount        = "Amount"
	keyOperation     = "Operation"
	keyAttributeName = "AttributeName"
	keyName          = "Name"
	keyUUIDMost      = "UUIDMost"
	keyUUIDLeast     = "UUIDLeast"
)

// Attribute is a typed view over the compound record of a single attribute
// modifier. It holds amount, operation, target stat, display name and a
// unique id stored as two signed 64-bit halves.
//
// Mutation through an Attribute mutates the backing compound, and through
// it any item attribute list the compound is part of.
type Attribute struct {
	data *Compound
}

// AttributeConfig configures a new attribute record. The zero value of
// Operation is OperationAddNumber and a zero UUID is replaced by a random
// one, so only Name, Type and Amount usually need to be set.
type AttributeConfig struct {
	// Name is the display name of the modifier. Attributes without a name
	// cannot be attached to an item.
	Name string
	// Amount is the modifier amount, interpreted per Operation.
	Amount float64
	// Operation selects how the amount combines with the base stat.
	Operation Operation
	// Type is the target stat descriptor. It must be registered.
	Type *AttributeType
	// UUID uniquely identifies the modifier on an item.
	UUID uuid.UUID
}

// New builds a fresh attribute record from the config.
func (c AttributeConfig) New() Attribute {
	if c.Type == nil {
		panic("nbt: attribute type cannot be nil")
	}
	id := c.UUID
	if id == uuid.Nil {
		id = uuid.New()
	}
	a := Attribute{data: NewCompound()}
	a.SetAmount(c.Amount)
	a.SetOperation(c.Operation)
	a.SetType(c.Type)
	a.SetName(c.Name)
	a.SetUUID(id)
	return a
}

// AttributeFromCompound wraps an existing attribute record, such as one
// found in an item's attribute list.
func AttributeFromCompound(data *Compound) Attribute {
	return Attribute{data: data}
}

// Compound returns the backing compound record.
func (a Attribute) Compound() *Compound {
	return a.data
}

// Amount returns the modifier amount, defaulting to zero when absent.
func (a Attribute) Amount() float64 {
	return a.data.GetFloat64(keyAmount, 0)
}

// SetAmount sets the modifier amount.
func (a Attribute) SetAmount(amount float64) {
	a.data.Set(keyAmount, amount)
}

// Operation returns the stored operation, defaulting to OperationAddNumber
// when absent. A stored id outside the defined set reports an error
// wrapping ErrCorruptOperation.
func (a Attribute) Operation() (Operation, error) {
	return OperationByID(a.data.GetInt(keyOperation, 0))
}

// SetOperation sets the stored operation.
func (a Attribute) SetOperation(op Operation) {
	a.data.Set(keyOperation, op.ID())
}

// Type returns the registered descriptor of the target stat. A stat name
// that was never registered reports false rather than an error.
func (a Attribute) Type() (*AttributeType, bool) {
	name := a.data.GetString(keyAttributeName, "")
	if name == "" {
		return nil, false
	}
	return AttributeTypeByName(name)
}

// SetType sets the target stat descriptor.
func (a Attribute) SetType(t *AttributeType) {
	if t == nil {
		panic("nbt: attribute type cannot be nil")
	}
	a.data.Set(keyAttributeName, t.Name())
}

// Name returns the display name of the modifier, or the empty string when
// absent.
func (a Attribute) Name() string {
	return a.data.GetString(keyName, "")
}

// SetName sets the display name of the modifier.
func (a Attribute) SetName(name string) {
	a.data.Set(keyName, name)
}

// UUID returns the unique id assembled from its stored halves. A record
// missing either half reports uuid.Nil.
func (a Attribute) UUID() uuid.UUID {
	if !a.data.Contains(keyUUIDMost) || !a.data.Contains(keyUUIDLeast) {
		return uuid.Nil
	}
	var id uuid.UUID
	binary.BigEndian.PutUint64(id[:8], uint64(a.data.GetLong(keyUUIDMost, 0)))
	binary.BigEndian.PutUint64(id[8:], uint64(a.data.GetLong(keyUUIDLeast, 0)))
	return id
}

// SetUUID stores the unique id as two signed 64-bit halves.
func (a Attribute) SetUUID(id uuid.UUID) {
	a.data.Set(keyUUIDMost, int64(binary.BigEndian.Uint64(id[:8])))
	a.data.Set(keyUUIDLeast, int64(binary.BigEndian.Uint64(id[8:])))
}
