package pet

import (
	"github.com/pthm-cable/petsim/components"
	"github.com/pthm-cable/petsim/entity"
)

// InteractionContext is what contact rules need from the pet.
type InteractionContext interface {
	State() State
	SetState(s State)
	AdjustStat(name string, delta float64)
	TouchSoap()
}

// ObjectRemover deletes a live object everywhere it is tracked.
type ObjectRemover interface {
	Delete(id entity.ID)
}

// Interaction applies gameplay rules when the pet touches an object.
type Interaction struct {
	ctx       InteractionContext
	store     *entity.Store
	objects   ObjectRemover
	eatHunger float64
}

// NewInteraction creates the pet-object rules.
func NewInteraction(ctx InteractionContext, store *entity.Store, objects ObjectRemover, eatHunger float64) *Interaction {
	return &Interaction{ctx: ctx, store: store, objects: objects, eatHunger: eatHunger}
}

// OnPetTouchObject handles one pet-object contact.
func (in *Interaction) OnPetTouchObject(_, obj entity.ID) {
	o := in.store.Object(obj)
	if o == nil {
		return
	}
	o.TouchingPet = true

	switch o.Type {
	case components.ObjectFood:
		in.eat(obj)
	case components.ObjectBathroom:
		if in.store.HasTag(obj, components.TagSoap) {
			in.ctx.TouchSoap()
			if in.ctx.State() != Bathing {
				in.ctx.SetState(Bathing)
			}
		}
	}
}

// eat consumes the food only when the pet is idle.
func (in *Interaction) eat(food entity.ID) {
	if in.ctx.State() != Idle {
		return
	}
	in.objects.Delete(food)
	in.ctx.SetState(Eating)
	in.ctx.AdjustStat(StatHunger, in.eatHunger)
}
