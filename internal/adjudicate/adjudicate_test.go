package adjudicate_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dipjudge/adjudicator/internal/adjudicate"
	"github.com/dipjudge/adjudicator/internal/csp"
	"github.com/dipjudge/adjudicator/internal/hypergraph"
	"github.com/dipjudge/adjudicator/internal/mapmodel"
)

func TestAdjudicate(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Adjudicate Suite")
}

// testMap is a small slice of the standard board covering every province
// named in spec.md §8's concrete scenarios, plus the Aegean/Eastern
// Mediterranean corner the Szykman scenario needs.
func testMap() *mapmodel.Map {
	provinces := []*mapmodel.Province{
		{ID: "par", Kind: mapmodel.Inland},
		{ID: "bur", Kind: mapmodel.Inland},
		{ID: "mun", Kind: mapmodel.Inland},
		{ID: "mar", Kind: mapmodel.Coastal},
		{ID: "ruh", Kind: mapmodel.Inland},
		{ID: "hol", Kind: mapmodel.Coastal},
		{ID: "bel", Kind: mapmodel.Coastal},
		{ID: "gre", Kind: mapmodel.Coastal},
		{ID: "bul", Kind: mapmodel.Coastal},
		{ID: "syr", Kind: mapmodel.Coastal},
		{ID: "aeg", Kind: mapmodel.Sea},
		{ID: "ion", Kind: mapmodel.Sea},
		{ID: "eas", Kind: mapmodel.Sea},
	}
	army := func(pairs ...string) []mapmodel.Adjacency {
		out := make([]mapmodel.Adjacency, 0, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			out = append(out, mapmodel.Adjacency{From: pairs[i], To: pairs[i+1], Class: mapmodel.Army})
			out = append(out, mapmodel.Adjacency{From: pairs[i+1], To: pairs[i], Class: mapmodel.Army})
		}
		return out
	}
	fleet := func(pairs ...string) []mapmodel.Adjacency {
		out := make([]mapmodel.Adjacency, 0, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			out = append(out, mapmodel.Adjacency{From: pairs[i], To: pairs[i+1], Class: mapmodel.Fleet})
			out = append(out, mapmodel.Adjacency{From: pairs[i+1], To: pairs[i], Class: mapmodel.Fleet})
		}
		return out
	}

	var adj []mapmodel.Adjacency
	adj = append(adj, army(
		"par", "bur",
		"mun", "bur",
		"mun", "par",
		"mar", "bur",
		"mar", "par",
		"ruh", "bur",
		"ruh", "mun",
		"ruh", "hol",
		"ruh", "mar",
		"hol", "bel",
		"bel", "ruh",
		"bel", "bur",
		"gre", "bul",
	)...)
	adj = append(adj, fleet(
		"aeg", "gre",
		"aeg", "bul",
		"aeg", "ion",
		"aeg", "eas",
		"aeg", "syr",
		"ion", "eas",
		"ion", "gre",
		"eas", "syr",
	)...)

	mp, err := mapmodel.New(provinces, adj)
	if err != nil {
		panic(err)
	}
	return mp
}

func unit(id, nation, class, loc string) *hypergraph.Unit {
	return &hypergraph.Unit{ID: id, Nationality: nation, Class: mapmodel.UnitClass(class), Location: loc}
}

func adjudicateOrders(units []*hypergraph.Unit, orders []hypergraph.RawOrder) (*adjudicate.Result, error) {
	hg, err := hypergraph.Build(units, orders)
	if err != nil {
		return nil, err
	}
	return adjudicate.Adjudicate(testMap(), hg, csp.NoopTracer{})
}

var _ = Describe("Adjudicate", func() {
	It("bounces two unsupported moves into the same province (scenario 1)", func() {
		units := []*hypergraph.Unit{
			unit("A-Par", "france", "army", "par"),
			unit("A-Mun", "germany", "army", "mun"),
		}
		orders := []hypergraph.RawOrder{
			{UnitID: "A-Par", Kind: hypergraph.Move, To: "bur"},
			{UnitID: "A-Mun", Kind: hypergraph.Move, To: "bur"},
		}
		result, err := adjudicateOrders(units, orders)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Units["A-Par"].Outcome).To(Equal(adjudicate.OutcomeBounced))
		Expect(result.Units["A-Par"].Location).To(Equal("par"))
		Expect(result.Units["A-Mun"].Outcome).To(Equal(adjudicate.OutcomeBounced))
		Expect(result.Units["A-Mun"].Location).To(Equal("mun"))
		Expect(result.Provinces["bur"].Winner).To(BeEmpty())
	})

	It("lets a supported move overcome a bare hold (scenario 2)", func() {
		units := []*hypergraph.Unit{
			unit("A-Par", "france", "army", "par"),
			unit("A-Mar", "france", "army", "mar"),
			unit("A-Mun", "germany", "army", "mun"),
		}
		orders := []hypergraph.RawOrder{
			{UnitID: "A-Par", Kind: hypergraph.Move, To: "bur"},
			{UnitID: "A-Mar", Kind: hypergraph.SupportMove, SupportedAt: "par", To: "bur"},
			{UnitID: "A-Mun", Kind: hypergraph.Hold},
		}
		result, err := adjudicateOrders(units, orders)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Units["A-Par"].Outcome).To(Equal(adjudicate.OutcomeMoves))
		Expect(result.Units["A-Par"].Location).To(Equal("bur"))
		Expect(result.OrderStatus["Order_A-Mar"]).To(Equal(adjudicate.StatusSuccess))
		Expect(result.Units["A-Mun"].Outcome).To(Equal(adjudicate.OutcomeHolds))
	})

	It("cuts a support under attack and bounces everyone (scenario 3)", func() {
		units := []*hypergraph.Unit{
			unit("A-Par", "france", "army", "par"),
			unit("A-Mar", "france", "army", "mar"),
			unit("A-Ruh", "germany", "army", "ruh"),
			unit("A-Bur", "england", "army", "bur"),
		}
		orders := []hypergraph.RawOrder{
			{UnitID: "A-Par", Kind: hypergraph.Move, To: "bur"},
			{UnitID: "A-Mar", Kind: hypergraph.SupportMove, SupportedAt: "par", To: "bur"},
			{UnitID: "A-Ruh", Kind: hypergraph.Move, To: "mar"},
			{UnitID: "A-Bur", Kind: hypergraph.Hold},
		}
		result, err := adjudicateOrders(units, orders)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.OrderStatus["Order_A-Mar"]).To(Equal(adjudicate.StatusCut))
		Expect(result.Units["A-Par"].Outcome).To(Equal(adjudicate.OutcomeBounced))
		Expect(result.Units["A-Ruh"].Outcome).To(Equal(adjudicate.OutcomeBounced))
		Expect(result.Units["A-Bur"].Outcome).To(Equal(adjudicate.OutcomeHolds))
	})

	It("resolves a pure three-unit cycle with every move succeeding (scenario 4)", func() {
		units := []*hypergraph.Unit{
			unit("A-Hol", "germany", "army", "hol"),
			unit("A-Bel", "germany", "army", "bel"),
			unit("A-Ruh", "germany", "army", "ruh"),
		}
		orders := []hypergraph.RawOrder{
			{UnitID: "A-Hol", Kind: hypergraph.Move, To: "bel"},
			{UnitID: "A-Bel", Kind: hypergraph.Move, To: "ruh"},
			{UnitID: "A-Ruh", Kind: hypergraph.Move, To: "hol"},
		}
		result, err := adjudicateOrders(units, orders)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Units["A-Hol"].Outcome).To(Equal(adjudicate.OutcomeMoves))
		Expect(result.Units["A-Hol"].Location).To(Equal("bel"))
		Expect(result.Units["A-Bel"].Outcome).To(Equal(adjudicate.OutcomeMoves))
		Expect(result.Units["A-Bel"].Location).To(Equal("ruh"))
		Expect(result.Units["A-Ruh"].Outcome).To(Equal(adjudicate.OutcomeMoves))
		Expect(result.Units["A-Ruh"].Location).To(Equal("hol"))
	})

	It("bounces a head-to-head swap even when both sides are equally supported (scenario 5)", func() {
		units := []*hypergraph.Unit{
			unit("A-Par", "france", "army", "par"),
			unit("A-Bur", "germany", "army", "bur"),
			unit("A-Mar", "france", "army", "mar"),
			unit("A-Mun", "germany", "army", "mun"),
		}
		orders := []hypergraph.RawOrder{
			{UnitID: "A-Par", Kind: hypergraph.Move, To: "bur"},
			{UnitID: "A-Bur", Kind: hypergraph.Move, To: "par"},
			{UnitID: "A-Mar", Kind: hypergraph.SupportMove, SupportedAt: "par", To: "bur"},
			{UnitID: "A-Mun", Kind: hypergraph.SupportMove, SupportedAt: "bur", To: "par"},
		}
		result, err := adjudicateOrders(units, orders)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Units["A-Par"].Outcome).To(Equal(adjudicate.OutcomeBounced))
		Expect(result.Units["A-Bur"].Outcome).To(Equal(adjudicate.OutcomeBounced))
	})

	It("resolves a self-referential convoy paradox by treating the convoy as disrupted (scenario 6)", func() {
		// F-Aeg's own convoy status and F-Bul's own support status each
		// depend on the other: if the convoy is active, A-Gre's arrival at
		// Bul cuts F-Bul's support, which leaves F-Eas too weak to
		// dislodge F-Aeg, which keeps the convoy active; if the convoy is
		// disrupted, A-Gre's move is void and cannot cut anything, so
		// F-Bul's support holds, F-Eas dislodges F-Aeg, and the convoy is
		// genuinely disrupted. Both assignments are self-consistent; the
		// Szykman tiebreak resolves the ambiguity toward disrupted.
		units := []*hypergraph.Unit{
			unit("F-Aeg", "turkey", "fleet", "aeg"),
			unit("A-Gre", "turkey", "army", "gre"),
			unit("F-Bul", "russia", "fleet", "bul"),
			unit("F-Eas", "italy", "fleet", "eas"),
		}
		orders := []hypergraph.RawOrder{
			{UnitID: "F-Aeg", Kind: hypergraph.Convoy, SupportedAt: "gre", To: "bul"},
			{UnitID: "A-Gre", Kind: hypergraph.Move, To: "bul", ConvoyPreference: hypergraph.ConvoyRequired},
			{UnitID: "F-Bul", Kind: hypergraph.SupportMove, SupportedAt: "eas", To: "aeg"},
			{UnitID: "F-Eas", Kind: hypergraph.Move, To: "aeg"},
		}
		result, err := adjudicateOrders(units, orders)
		Expect(err).NotTo(HaveOccurred())

		Expect(result.OrderStatus["Order_F-Aeg"]).To(Equal(adjudicate.StatusFailed))
		Expect(result.OrderStatus["Order_A-Gre"]).To(Equal(adjudicate.StatusVoid))
		Expect(result.Units["A-Gre"].Outcome).To(Equal(adjudicate.OutcomeBounced))
		Expect(result.Units["A-Gre"].Location).To(Equal("gre"))
		Expect(result.OrderStatus["Order_F-Bul"]).To(Equal(adjudicate.StatusSuccess))
		Expect(result.Units["F-Eas"].Outcome).To(Equal(adjudicate.OutcomeMoves))
		Expect(result.Units["F-Aeg"].Outcome).To(Equal(adjudicate.OutcomeDislodged))
		Expect(result.Units["F-Aeg"].DislodgedFrom).To(Equal("eas"))
	})

	It("does not let a power dislodge its own unit (family 12)", func() {
		units := []*hypergraph.Unit{
			unit("A-Par", "france", "army", "par"),
			unit("A-Mar", "france", "army", "mar"),
			unit("A-Bur", "france", "army", "bur"),
		}
		orders := []hypergraph.RawOrder{
			{UnitID: "A-Par", Kind: hypergraph.Move, To: "bur"},
			{UnitID: "A-Mar", Kind: hypergraph.SupportMove, SupportedAt: "par", To: "bur"},
			{UnitID: "A-Bur", Kind: hypergraph.Hold},
		}
		result, err := adjudicateOrders(units, orders)
		Expect(err).NotTo(HaveOccurred())
		// A-Par's supported attack (strength 2) would ordinarily beat
		// A-Bur's hold strength (1), but both are French: the win is
		// disqualified and the province is re-resolved without France's
		// own attacker.
		Expect(result.Units["A-Par"].Outcome).To(Equal(adjudicate.OutcomeBounced))
		Expect(result.Units["A-Bur"].Outcome).To(Equal(adjudicate.OutcomeHolds))
		Expect(result.Provinces["bur"].Reason).To(ContainSubstring("self-dislodgement forbidden"))
	})

	It("is deterministic across repeated runs on identical input (property 8)", func() {
		units := []*hypergraph.Unit{
			unit("A-Par", "france", "army", "par"),
			unit("A-Mar", "france", "army", "mar"),
			unit("A-Ruh", "germany", "army", "ruh"),
		}
		orders := []hypergraph.RawOrder{
			{UnitID: "A-Par", Kind: hypergraph.Move, To: "bur"},
			{UnitID: "A-Mar", Kind: hypergraph.SupportMove, SupportedAt: "par", To: "bur"},
			{UnitID: "A-Ruh", Kind: hypergraph.Move, To: "mar"},
		}
		first, err := adjudicateOrders(units, orders)
		Expect(err).NotTo(HaveOccurred())
		second, err := adjudicateOrders(units, orders)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.Units["A-Par"].Outcome).To(Equal(second.Units["A-Par"].Outcome))
		Expect(first.OrderStatus).To(Equal(second.OrderStatus))
	})
})
