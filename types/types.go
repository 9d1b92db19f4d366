// Package types defines the shared data structures for the Emberwood engine:
// the immutable world definitions and the mutable runtime state. Behavior
// lives in the engine packages; the only methods here are the hp-mutation
// primitives, which own the clamping rules.
package types

// Intent is the parsed representation of a player command.
type Intent struct {
	Verb string
	Arg  string // optional
}

// QuestKind classifies what a quest counts. The same values name the
// world events that advance quests.
type QuestKind string

const (
	QuestCollect QuestKind = "collect"
	QuestDefeat  QuestKind = "defeat"
	QuestVisit   QuestKind = "visit"
)

// Event is a world occurrence that may advance quest progress.
type Event struct {
	Kind   QuestKind
	Target string
}

// Result is the output of a single game step.
type Result struct {
	Output []string
	Events []Event
}

// EffectKind identifies a timed status effect.
type EffectKind string

const (
	EffectPoison EffectKind = "poison"
	EffectBurn   EffectKind = "burn"
	EffectBleed  EffectKind = "bleed"
	EffectStun   EffectKind = "stun"
)

// EffectState is the live state of one active effect on an entity.
// Stacks is only meaningful for bleed, which grows by one each tick.
type EffectState struct {
	Turns  int `json:"turns"`
	Stacks int `json:"stacks,omitempty"`
}

// ItemKind classifies an item template.
type ItemKind string

const (
	ItemConsumable ItemKind = "consumable"
	ItemEquipable  ItemKind = "equipable"
	ItemKey        ItemKind = "key"
)

// Slot names an equipment slot.
type Slot string

const (
	SlotWeapon    Slot = "weapon"
	SlotArmor     Slot = "armor"
	SlotAccessory Slot = "accessory"
)

// StatBonus is the explicit record of stat deltas an equipable grants.
type StatBonus struct {
	Attack  int `json:"attack,omitempty"`
	Defense int `json:"defense,omitempty"`
}

// Item is an immutable item template. Inventories hold item IDs, never
// copies of the template.
type Item struct {
	ID          string
	Name        string
	Kind        ItemKind
	Heal        int        // consumable: hp restored
	Cures       EffectKind // consumable: effect removed ("" = none)
	Bonus       StatBonus  // equipable: stat deltas
	Slot        Slot       // equipable: target slot
	Price       int
	Description string
}

// Affliction is a status effect an enemy may inflict on a successful hit.
type Affliction struct {
	Kind   EffectKind
	Turns  int
	Chance float64
}

// BossExtras is the narrative-only payload that makes an enemy a boss.
// Combat math never looks at it.
type BossExtras struct {
	Intros []string // engagement lines; {player}, {weapon}, {room} interpolated
	Taunts []string // victory lines
}

// EnemyDef is an immutable enemy template. Live instances are clones.
type EnemyDef struct {
	ID       string
	Name     string
	Level    int
	MaxHP    int
	Attack   int
	Defense  int
	Gold     int
	XP       int
	Loot     []string
	Inflicts *Affliction
	Boss     *BossExtras
}

// Enemy is a live combat instance cloned from an EnemyDef at engagement.
type Enemy struct {
	ID      string                      `json:"id"`
	Name    string                      `json:"name"`
	Level   int                         `json:"level"`
	HP      int                         `json:"hp"`
	MaxHP   int                         `json:"hp_max"`
	Attack  int                         `json:"attack"`
	Defense int                         `json:"defense"`
	Gold    int                         `json:"gold"`
	XP      int                         `json:"xp"`
	Loot    []string                    `json:"loot"`
	Effects map[EffectKind]*EffectState `json:"effects"`

	Inflicts *Affliction `json:"-"`
	Boss     *BossExtras `json:"-"`
}

// Damage reduces the enemy's hp, clamping at 0.
func (e *Enemy) Damage(n int) {
	if n <= 0 {
		return
	}
	e.HP -= n
	if e.HP < 0 {
		e.HP = 0
	}
}

// Heal raises the enemy's hp, clamping at MaxHP.
func (e *Enemy) Heal(n int) {
	if n <= 0 {
		return
	}
	e.HP += n
	if e.HP > e.MaxHP {
		e.HP = e.MaxHP
	}
}

// RoomDef is an immutable room definition.
type RoomDef struct {
	ID          string
	Name        string
	Description string
	Exits       map[string]string // direction → room id
	Items       []string
	Enemies     []string
	NPCs        map[string][]string // npc name → dialogue lines
	Sanctuary   bool
}

// RoomState is the mutable per-room state: items on the ground and the
// ids of enemies not yet defeated.
type RoomState struct {
	Items   []string `json:"items"`
	Enemies []string `json:"enemies"`
}

// QuestDef is an immutable quest definition.
type QuestDef struct {
	ID         string
	Kind       QuestKind
	Target     string
	Count      int
	RewardXP   int
	RewardGold int
	Narrative  string
}

// Quest is the live progress record for one quest. Once Completed it is
// permanently inert.
type Quest struct {
	ID         string    `json:"id"`
	Kind       QuestKind `json:"kind"`
	Target     string    `json:"target"`
	Count      int       `json:"count"`
	RewardXP   int       `json:"reward_xp"`
	RewardGold int       `json:"reward_gold"`
	Narrative  string    `json:"narrative"`
	Progress   int       `json:"progress"`
	Completed  bool      `json:"completed"`
}

// GameDef holds game metadata from Lua.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Start   string // starting room ID
	Intro   string
}

// Tuning holds the balance constants. Lua may override any of them.
type Tuning struct {
	CritChance        float64
	CritMultiplier    float64
	FleeChance        float64
	SkillManaCost     int
	SkillMultiplier   int
	SanctuaryCost     int
	SanctuaryDiscount float64
}

// Player holds the player's runtime state. Attack and Defense are derived:
// base plus equipped bonuses, recomputed by the equipment resolver.
type Player struct {
	Name        string                      `json:"name"`
	Level       int                         `json:"level"`
	XP          int                         `json:"xp"`
	HP          int                         `json:"hp"`
	MaxHP       int                         `json:"hp_max"`
	Mana        int                         `json:"mana"`
	MaxMana     int                         `json:"mana_max"`
	Gold        int                         `json:"gold"`
	BaseAttack  int                         `json:"base_attack"`
	BaseDefense int                         `json:"base_defense"`
	Attack      int                         `json:"attack"`
	Defense     int                         `json:"defense"`
	Inventory   []string                    `json:"inventory"`
	Equipment   map[Slot]string             `json:"equipment"`
	Effects     map[EffectKind]*EffectState `json:"effects"`
}

// Damage reduces the player's hp, clamping at 0.
func (p *Player) Damage(n int) {
	if n <= 0 {
		return
	}
	p.HP -= n
	if p.HP < 0 {
		p.HP = 0
	}
}

// Heal raises the player's hp, clamping at MaxHP.
func (p *Player) Heal(n int) {
	if n <= 0 {
		return
	}
	p.HP += n
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
}

// CombatPhase names a state of the encounter state machine.
type CombatPhase string

const (
	PhaseEngaging   CombatPhase = "engaging"
	PhasePlayerTurn CombatPhase = "player_turn"
	PhaseEnemyTurn  CombatPhase = "enemy_turn"
	PhaseVictory    CombatPhase = "victory"
	PhaseDefeat     CombatPhase = "defeat"
	PhaseFled       CombatPhase = "fled"
)

// Encounter is one combat instance against a single enemy clone.
// It is transient: never persisted.
type Encounter struct {
	Enemy      *Enemy
	Phase      CombatPhase
	Rounds     int
	IntroShown bool
}

// State is the complete mutable game state.
type State struct {
	Player    Player
	Room      string // current room ID
	Rooms     map[string]RoomState
	Quests    []*Quest
	Encounter *Encounter // nil outside combat
	GameOver  bool
	Verbose   bool
	TurnCount int

	RNGSeed     int64
	RNGPosition int64
}
