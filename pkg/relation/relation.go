package relation

// Gender tags a person in the roster. Unknown is a valid value; reciprocal
// resolution degrades to a generic label instead of guessing.
type Gender string

const (
	Male    Gender = "male"
	Female  Gender = "female"
	Unknown Gender = ""
)

// Kind is one recognized relationship type. The set is closed; assertions
// carrying an unrecognized kind are treated as KindOther by the assembler.
type Kind string

const (
	KindFather        Kind = "father"
	KindMother        Kind = "mother"
	KindParent        Kind = "parent"
	KindSon           Kind = "son"
	KindDaughter      Kind = "daughter"
	KindChild         Kind = "child"
	KindBrother       Kind = "brother"
	KindSister        Kind = "sister"
	KindSibling       Kind = "sibling"
	KindHusband       Kind = "husband"
	KindWife          Kind = "wife"
	KindSpouse        Kind = "spouse"
	KindGrandfather   Kind = "grandfather"
	KindGrandmother   Kind = "grandmother"
	KindGrandparent   Kind = "grandparent"
	KindGrandson      Kind = "grandson"
	KindGranddaughter Kind = "granddaughter"
	KindGrandchild    Kind = "grandchild"
	KindUncle         Kind = "uncle"
	KindAunt          Kind = "aunt"
	KindNephew        Kind = "nephew"
	KindNiece         Kind = "niece"
	KindCousin        Kind = "cousin"
	KindFriend        Kind = "friend"
	KindMentor        Kind = "mentor"
	KindStudent       Kind = "student"
	KindOther         Kind = "other"
)

// Category classifies a kind for layout purposes only. The generational
// layout steps up a row for ancestor edges, down for descendant edges, and
// stays on the row for lateral edges.
type Category string

const (
	CategoryAncestor   Category = "ancestor"
	CategoryDescendant Category = "descendant"
	CategoryLateral    Category = "lateral"
)

// categories maps every kind to its layout category. Non-family kinds
// (friend, mentor, student, other) stay on the same row as the person who
// asserted them.
var categories = map[Kind]Category{
	KindFather:        CategoryAncestor,
	KindMother:        CategoryAncestor,
	KindParent:        CategoryAncestor,
	KindGrandfather:   CategoryAncestor,
	KindGrandmother:   CategoryAncestor,
	KindGrandparent:   CategoryAncestor,
	KindUncle:         CategoryAncestor,
	KindAunt:          CategoryAncestor,
	KindSon:           CategoryDescendant,
	KindDaughter:      CategoryDescendant,
	KindChild:         CategoryDescendant,
	KindGrandson:      CategoryDescendant,
	KindGranddaughter: CategoryDescendant,
	KindGrandchild:    CategoryDescendant,
	KindNephew:        CategoryDescendant,
	KindNiece:         CategoryDescendant,
	KindBrother:       CategoryLateral,
	KindSister:        CategoryLateral,
	KindSibling:       CategoryLateral,
	KindHusband:       CategoryLateral,
	KindWife:          CategoryLateral,
	KindSpouse:        CategoryLateral,
	KindCousin:        CategoryLateral,
	KindFriend:        CategoryLateral,
	KindMentor:        CategoryLateral,
	KindStudent:       CategoryLateral,
	KindOther:         CategoryLateral,
}

// CategoryOf returns the layout category for a kind. Unrecognized kinds are
// lateral, matching their KindOther treatment elsewhere.
func CategoryOf(k Kind) Category {
	if c, ok := categories[k]; ok {
		return c
	}
	return CategoryLateral
}

// Known reports whether k is part of the recognized vocabulary.
func Known(k Kind) bool {
	_, ok := categories[k]
	return ok
}

// Kinds returns the full vocabulary in stable order.
func Kinds() []Kind {
	return []Kind{
		KindFather, KindMother, KindParent,
		KindSon, KindDaughter, KindChild,
		KindBrother, KindSister, KindSibling,
		KindHusband, KindWife, KindSpouse,
		KindGrandfather, KindGrandmother, KindGrandparent,
		KindGrandson, KindGranddaughter, KindGrandchild,
		KindUncle, KindAunt, KindNephew, KindNiece,
		KindCousin, KindFriend, KindMentor, KindStudent, KindOther,
	}
}
