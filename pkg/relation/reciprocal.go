package relation

// reciprocalEntry is one row of the reciprocal lookup table. byTarget keys
// on the gender of the person the assertion points at; bySource is a second
// tier for spouse-like kinds where the asking side's gender decides when the
// target gender is unknown. generic is the fallback when neither resolves.
type reciprocalEntry struct {
	byTarget map[Gender]Kind
	bySource map[Gender]Kind
	generic  Kind
}

// reciprocals enumerates every kind exhaustively. Symmetric kinds (cousin,
// friend, other) reciprocate to themselves; mentor and student reciprocate
// to each other regardless of gender.
var reciprocals = map[Kind]reciprocalEntry{
	KindFather: {
		byTarget: map[Gender]Kind{Male: KindSon, Female: KindDaughter},
		generic:  KindChild,
	},
	KindMother: {
		byTarget: map[Gender]Kind{Male: KindSon, Female: KindDaughter},
		generic:  KindChild,
	},
	KindParent: {
		byTarget: map[Gender]Kind{Male: KindSon, Female: KindDaughter},
		generic:  KindChild,
	},
	KindSon: {
		byTarget: map[Gender]Kind{Male: KindFather, Female: KindMother},
		generic:  KindParent,
	},
	KindDaughter: {
		byTarget: map[Gender]Kind{Male: KindFather, Female: KindMother},
		generic:  KindParent,
	},
	KindChild: {
		byTarget: map[Gender]Kind{Male: KindFather, Female: KindMother},
		generic:  KindParent,
	},
	KindBrother: {
		byTarget: map[Gender]Kind{Male: KindBrother, Female: KindSister},
		generic:  KindSibling,
	},
	KindSister: {
		byTarget: map[Gender]Kind{Male: KindBrother, Female: KindSister},
		generic:  KindSibling,
	},
	KindSibling: {
		byTarget: map[Gender]Kind{Male: KindBrother, Female: KindSister},
		generic:  KindSibling,
	},
	KindHusband: {
		byTarget: map[Gender]Kind{Male: KindHusband, Female: KindWife},
		bySource: map[Gender]Kind{Male: KindWife, Female: KindHusband},
		generic:  KindSpouse,
	},
	KindWife: {
		byTarget: map[Gender]Kind{Male: KindHusband, Female: KindWife},
		bySource: map[Gender]Kind{Male: KindWife, Female: KindHusband},
		generic:  KindSpouse,
	},
	KindSpouse: {
		byTarget: map[Gender]Kind{Male: KindHusband, Female: KindWife},
		generic:  KindSpouse,
	},
	KindGrandfather: {
		byTarget: map[Gender]Kind{Male: KindGrandson, Female: KindGranddaughter},
		generic:  KindGrandchild,
	},
	KindGrandmother: {
		byTarget: map[Gender]Kind{Male: KindGrandson, Female: KindGranddaughter},
		generic:  KindGrandchild,
	},
	KindGrandparent: {
		byTarget: map[Gender]Kind{Male: KindGrandson, Female: KindGranddaughter},
		generic:  KindGrandchild,
	},
	KindGrandson: {
		byTarget: map[Gender]Kind{Male: KindGrandfather, Female: KindGrandmother},
		generic:  KindGrandparent,
	},
	KindGranddaughter: {
		byTarget: map[Gender]Kind{Male: KindGrandfather, Female: KindGrandmother},
		generic:  KindGrandparent,
	},
	KindGrandchild: {
		byTarget: map[Gender]Kind{Male: KindGrandfather, Female: KindGrandmother},
		generic:  KindGrandparent,
	},
	KindUncle: {
		byTarget: map[Gender]Kind{Male: KindNephew, Female: KindNiece},
		generic:  KindNephew,
	},
	KindAunt: {
		byTarget: map[Gender]Kind{Male: KindNephew, Female: KindNiece},
		generic:  KindNephew,
	},
	KindNephew: {
		byTarget: map[Gender]Kind{Male: KindUncle, Female: KindAunt},
		generic:  KindUncle,
	},
	KindNiece: {
		byTarget: map[Gender]Kind{Male: KindUncle, Female: KindAunt},
		generic:  KindUncle,
	},
	KindCousin:  {generic: KindCousin},
	KindFriend:  {generic: KindFriend},
	KindMentor:  {generic: KindStudent},
	KindStudent: {generic: KindMentor},
	KindOther:   {generic: KindOther},
}

// genderless kinds resolve exactly through the generic tier; no gender
// information is needed to name the reverse direction.
var genderless = map[Kind]bool{
	KindCousin:  true,
	KindFriend:  true,
	KindMentor:  true,
	KindStudent: true,
	KindOther:   true,
}

// Reciprocal returns the kind that describes an asserted relationship when
// looking from the target back at the source. The second result is false
// when gender information was insufficient and the generic fallback was
// used; callers must treat such labels as low-confidence.
//
// The function is a pure table lookup: deterministic, no side effects.
func Reciprocal(k Kind, targetGender, sourceGender Gender) (Kind, bool) {
	entry, ok := reciprocals[k]
	if !ok {
		return KindOther, false
	}
	if genderless[k] {
		return entry.generic, true
	}
	if r, ok := entry.byTarget[targetGender]; ok {
		return r, true
	}
	if entry.bySource != nil {
		if r, ok := entry.bySource[sourceGender]; ok {
			return r, true
		}
	}
	return entry.generic, false
}
