// Package equip resolves the player's derived stats from base values
// plus equipped item bonuses.
package equip

import (
	"fmt"

	"github.com/nathoo/emberwood/types"
)

// Recompute rebuilds the player's attack and defense from base stats
// plus the bonus of every equipped item. It is idempotent and is the
// only code that writes the derived stats.
func Recompute(p *types.Player, items map[string]types.Item) {
	p.Attack = p.BaseAttack
	p.Defense = p.BaseDefense
	for _, id := range p.Equipment {
		item, ok := items[id]
		if !ok {
			continue
		}
		p.Attack += item.Bonus.Attack
		p.Defense += item.Bonus.Defense
	}
}

// Equip moves an item from inventory into its slot. If the slot is
// occupied the previous occupant returns to inventory. Derived stats
// are recomputed before returning.
func Equip(p *types.Player, items map[string]types.Item, id string) (string, error) {
	item, ok := items[id]
	if !ok {
		return "", fmt.Errorf("unknown item %q", id)
	}
	if item.Kind != types.ItemEquipable {
		return "", fmt.Errorf("%s cannot be equipped", item.Name)
	}
	if !removeFromInventory(p, id) {
		return "", fmt.Errorf("you are not carrying %s", item.Name)
	}

	if prev, occupied := p.Equipment[item.Slot]; occupied {
		p.Inventory = append(p.Inventory, prev)
	}
	p.Equipment[item.Slot] = id
	Recompute(p, items)
	return item.Name, nil
}

// Unequip moves the item in the given slot back to inventory and
// recomputes derived stats.
func Unequip(p *types.Player, items map[string]types.Item, slot types.Slot) (string, error) {
	id, ok := p.Equipment[slot]
	if !ok {
		return "", fmt.Errorf("nothing equipped in the %s slot", slot)
	}
	delete(p.Equipment, slot)
	p.Inventory = append(p.Inventory, id)
	Recompute(p, items)

	if item, ok := items[id]; ok {
		return item.Name, nil
	}
	return id, nil
}

func removeFromInventory(p *types.Player, id string) bool {
	for i, have := range p.Inventory {
		if have == id {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
			return true
		}
	}
	return false
}
