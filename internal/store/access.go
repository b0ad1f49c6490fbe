package store

import (
	"fmt"

	"gamescript-extractor/internal/model"
)

func cloneList[T any](src []T, clone func(T) T) []T {
	out := make([]T, len(src))
	for i, v := range src {
		out[i] = clone(v)
	}
	return out
}

func indexOf[T model.Entity](list []T, name string) int {
	for i, e := range list {
		if e.EntityName() == name {
			return i
		}
	}
	return -1
}

func get[T model.Entity](s *Store, list *[]T, kind model.EntityType, name string, clone func(T) T) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(*list, name)
	if i < 0 {
		var zero T
		return zero, fmt.Errorf("%s %q: %w", kind, name, ErrNotFound)
	}
	return clone((*list)[i]), nil
}

func all[T any](s *Store, list *[]T, clone func(T) T) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneList(*list, clone)
}

// update applies fn to a copy of the named entity and stores the copy. A rename
// onto another entity's name is rejected and nothing changes.
func update[T model.Entity](s *Store, list *[]T, kind model.EntityType, name string, clone func(T) T, fn func(*T)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(*list, name)
	if i < 0 {
		return fmt.Errorf("update %s %q: %w", kind, name, ErrNotFound)
	}
	edited := clone((*list)[i])
	fn(&edited)
	newName := edited.EntityName()
	if newName == "" {
		return fmt.Errorf("update %s %q: empty name", kind, name)
	}
	if j := indexOf(*list, newName); j >= 0 && j != i {
		return fmt.Errorf("update %s %q: rename to %q: %w", kind, name, newName, ErrDuplicateName)
	}
	(*list)[i] = edited
	s.changed = true
	return nil
}

func remove[T model.Entity](s *Store, list *[]T, kind model.EntityType, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(*list, name)
	if i < 0 {
		return fmt.Errorf("remove %s %q: %w", kind, name, ErrNotFound)
	}
	*list = append((*list)[:i:i], (*list)[i+1:]...)
	s.changed = true
	return nil
}

// Getters return copies; edits go through the Update setters, which apply the
// change to a copy and swap it in.

// Character returns a copy of the named character.
func (s *Store) Character(name string) (model.Character, error) {
	return get(s, &s.data.characters, model.KindCharacter, name, model.Character.Clone)
}

// Characters returns a copy of every character in source order.
func (s *Store) Characters() []model.Character {
	return all(s, &s.data.characters, model.Character.Clone)
}

// UpdateCharacter edits the named character and marks the store changed.
func (s *Store) UpdateCharacter(name string, fn func(*model.Character)) error {
	return update(s, &s.data.characters, model.KindCharacter, name, model.Character.Clone, fn)
}

// RemoveCharacter deletes the named character and marks the store changed.
func (s *Store) RemoveCharacter(name string) error {
	return remove(s, &s.data.characters, model.KindCharacter, name)
}

func (s *Store) Item(name string) (model.Item, error) {
	return get(s, &s.data.items, model.KindItem, name, model.Item.Clone)
}

func (s *Store) Items() []model.Item {
	return all(s, &s.data.items, model.Item.Clone)
}

func (s *Store) UpdateItem(name string, fn func(*model.Item)) error {
	return update(s, &s.data.items, model.KindItem, name, model.Item.Clone, fn)
}

func (s *Store) RemoveItem(name string) error {
	return remove(s, &s.data.items, model.KindItem, name)
}

func (s *Store) Spell(name string) (model.Spell, error) {
	return get(s, &s.data.spells, model.KindSpell, name, model.Spell.Clone)
}

func (s *Store) Spells() []model.Spell {
	return all(s, &s.data.spells, model.Spell.Clone)
}

func (s *Store) UpdateSpell(name string, fn func(*model.Spell)) error {
	return update(s, &s.data.spells, model.KindSpell, name, model.Spell.Clone, fn)
}

func (s *Store) RemoveSpell(name string) error {
	return remove(s, &s.data.spells, model.KindSpell, name)
}

func (s *Store) Monster(name string) (model.Monster, error) {
	return get(s, &s.data.monsters, model.KindMonster, name, model.Monster.Clone)
}

func (s *Store) Monsters() []model.Monster {
	return all(s, &s.data.monsters, model.Monster.Clone)
}

func (s *Store) UpdateMonster(name string, fn func(*model.Monster)) error {
	return update(s, &s.data.monsters, model.KindMonster, name, model.Monster.Clone, fn)
}

func (s *Store) RemoveMonster(name string) error {
	return remove(s, &s.data.monsters, model.KindMonster, name)
}

func (s *Store) Map(name string) (model.Map, error) {
	return get(s, &s.data.maps, model.KindMap, name, model.Map.Clone)
}

func (s *Store) Maps() []model.Map {
	return all(s, &s.data.maps, model.Map.Clone)
}

func (s *Store) UpdateMap(name string, fn func(*model.Map)) error {
	return update(s, &s.data.maps, model.KindMap, name, model.Map.Clone, fn)
}

func (s *Store) RemoveMap(name string) error {
	return remove(s, &s.data.maps, model.KindMap, name)
}

func (s *Store) Battle(name string) (model.Battle, error) {
	return get(s, &s.data.battles, model.KindBattle, name, model.Battle.Clone)
}

func (s *Store) Battles() []model.Battle {
	return all(s, &s.data.battles, model.Battle.Clone)
}

func (s *Store) UpdateBattle(name string, fn func(*model.Battle)) error {
	return update(s, &s.data.battles, model.KindBattle, name, model.Battle.Clone, fn)
}

func (s *Store) RemoveBattle(name string) error {
	return remove(s, &s.data.battles, model.KindBattle, name)
}

func (s *Store) NPC(name string) (model.NPC, error) {
	return get(s, &s.data.npcs, model.KindNPC, name, model.NPC.Clone)
}

func (s *Store) NPCs() []model.NPC {
	return all(s, &s.data.npcs, model.NPC.Clone)
}

func (s *Store) UpdateNPC(name string, fn func(*model.NPC)) error {
	return update(s, &s.data.npcs, model.KindNPC, name, model.NPC.Clone, fn)
}

func (s *Store) RemoveNPC(name string) error {
	return remove(s, &s.data.npcs, model.KindNPC, name)
}

// Remove deletes the named entity of any kind.
func (s *Store) Remove(kind model.EntityType, name string) error {
	switch kind {
	case model.KindCharacter:
		return s.RemoveCharacter(name)
	case model.KindItem:
		return s.RemoveItem(name)
	case model.KindSpell:
		return s.RemoveSpell(name)
	case model.KindMonster:
		return s.RemoveMonster(name)
	case model.KindMap:
		return s.RemoveMap(name)
	case model.KindBattle:
		return s.RemoveBattle(name)
	case model.KindNPC:
		return s.RemoveNPC(name)
	}
	return fmt.Errorf("remove %q from unknown kind %q: %w", name, kind, ErrNotFound)
}

// Rename changes the name of an entity of any kind.
func (s *Store) Rename(kind model.EntityType, name, newName string) error {
	switch kind {
	case model.KindCharacter:
		return s.UpdateCharacter(name, func(e *model.Character) { e.Name = newName })
	case model.KindItem:
		return s.UpdateItem(name, func(e *model.Item) { e.Name = newName })
	case model.KindSpell:
		return s.UpdateSpell(name, func(e *model.Spell) { e.Name = newName })
	case model.KindMonster:
		return s.UpdateMonster(name, func(e *model.Monster) { e.Name = newName })
	case model.KindMap:
		return s.UpdateMap(name, func(e *model.Map) { e.Name = newName })
	case model.KindBattle:
		return s.UpdateBattle(name, func(e *model.Battle) { e.Name = newName })
	case model.KindNPC:
		return s.UpdateNPC(name, func(e *model.NPC) { e.Name = newName })
	}
	return fmt.Errorf("rename %q in unknown kind %q: %w", name, kind, ErrNotFound)
}
