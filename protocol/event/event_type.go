// Code generated from the original source's event-type enumeration
// order (models/gameevents.py's EventMap dict, walked in
// declaration order -- see DESIGN.md's Open Question notes: the
// retrieval pack did not carry GameEventType's own numeric values,
// so codes are assigned 0..n in the dict's declaration order, the
// same convention PacketType uses (spec §9).
package event

// Type identifies the leading byte of one event within a
// GAME_UPDATE payload (spec §4.C).
type Type uint8

const (
	TypeUnknown Type = 0
	TypeEatDots Type = 1
	TypeEatBlob Type = 2
	TypeEatSmbh Type = 3
	TypeBlobExplode Type = 4
	TypeBlobLost Type = 5
	TypeEject Type = 6
	TypeSplit Type = 7
	TypeRecombine Type = 8
	TypeTimerWarning Type = 9
	TypeCtfScore Type = 10
	TypeCtfFlagReturned Type = 11
	TypeCtfFlagStolen Type = 12
	TypeCtfFlagDropped Type = 13
	TypeAchievementEarned Type = 14
	TypeXpGained Type = 15
	TypeUnused2 Type = 16
	TypeXpSet Type = 17
	TypeDqSet Type = 18
	TypeDqCompleted Type = 19
	TypeDqProgress Type = 20
	TypeEatServerBlob Type = 21
	TypeEatSpecialObjects Type = 22
	TypeSoSet Type = 23
	TypeLevelUp Type = 24
	TypeArenaRankAchieved Type = 25
	TypeDomCpLost Type = 26
	TypeDomCpGained Type = 27
	TypeUnused1 Type = 28
	TypeCtfGained Type = 29
	TypeGameOver Type = 30
	TypeBlobStatus Type = 31
	TypeTeleport Type = 32
	TypeShoot Type = 33
	TypeClanWarWon Type = 34
	TypePlasmaReward Type = 35
	TypeEmote Type = 36
	TypeEndMission Type = 37
	TypeXpGained2 Type = 38
	TypeEatCake Type = 39
	TypeCoinCount Type = 40
	TypeClearEffects Type = 41
	TypeSpeed Type = 42
	TypeTrick Type = 43
	TypeDestroyAsteroid Type = 44
	TypeAccolade Type = 45
	TypeInvis Type = 46
	TypeKilledBy Type = 47
	TypeRadiationCloud Type = 48
	TypeCharge Type = 49
	TypeLpCount Type = 50
	TypeBrBounds Type = 51
	TypeMinimap Type = 52
	TypeRlglDeath Type = 53
	TypeRlglState Type = 54
)

var typeNames = map[Type]string{
	TypeUnknown: "UNKNOWN",
	TypeEatDots: "EAT_DOTS",
	TypeEatBlob: "EAT_BLOB",
	TypeEatSmbh: "EAT_SMBH",
	TypeBlobExplode: "BLOB_EXPLODE",
	TypeBlobLost: "BLOB_LOST",
	TypeEject: "EJECT",
	TypeSplit: "SPLIT",
	TypeRecombine: "RECOMBINE",
	TypeTimerWarning: "TIMER_WARNING",
	TypeCtfScore: "CTF_SCORE",
	TypeCtfFlagReturned: "CTF_FLAG_RETURNED",
	TypeCtfFlagStolen: "CTF_FLAG_STOLEN",
	TypeCtfFlagDropped: "CTF_FLAG_DROPPED",
	TypeAchievementEarned: "ACHIEVEMENT_EARNED",
	TypeXpGained: "XP_GAINED",
	TypeUnused2: "UNUSED_2",
	TypeXpSet: "XP_SET",
	TypeDqSet: "DQ_SET",
	TypeDqCompleted: "DQ_COMPLETED",
	TypeDqProgress: "DQ_PROGRESS",
	TypeEatServerBlob: "EAT_SERVER_BLOB",
	TypeEatSpecialObjects: "EAT_SPECIAL_OBJECTS",
	TypeSoSet: "SO_SET",
	TypeLevelUp: "LEVEL_UP",
	TypeArenaRankAchieved: "ARENA_RANK_ACHIEVED",
	TypeDomCpLost: "DOM_CP_LOST",
	TypeDomCpGained: "DOM_CP_GAINED",
	TypeUnused1: "UNUSED_1",
	TypeCtfGained: "CTF_GAINED",
	TypeGameOver: "GAME_OVER",
	TypeBlobStatus: "BLOB_STATUS",
	TypeTeleport: "TELEPORT",
	TypeShoot: "SHOOT",
	TypeClanWarWon: "CLAN_WAR_WON",
	TypePlasmaReward: "PLASMA_REWARD",
	TypeEmote: "EMOTE",
	TypeEndMission: "END_MISSION",
	TypeXpGained2: "XP_GAINED_2",
	TypeEatCake: "EAT_CAKE",
	TypeCoinCount: "COIN_COUNT",
	TypeClearEffects: "CLEAR_EFFECTS",
	TypeSpeed: "SPEED",
	TypeTrick: "TRICK",
	TypeDestroyAsteroid: "DESTROY_ASTEROID",
	TypeAccolade: "ACCOLADE",
	TypeInvis: "INVIS",
	TypeKilledBy: "KILLED_BY",
	TypeRadiationCloud: "RADIATION_CLOUD",
	TypeCharge: "CHARGE",
	TypeLpCount: "LP_COUNT",
	TypeBrBounds: "BR_BOUNDS",
	TypeMinimap: "MINIMAP",
	TypeRlglDeath: "RLGL_DEATH",
	TypeRlglState: "RLGL_STATE",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN_EVENT"
}

// Known reports whether t is one of the 55 enumerated event types.
func (t Type) Known() bool {
	_, ok := typeNames[t]
	return ok
}
