package finance

import (
	"testing"

	"github.com/MarcinGorn/businesssuite/internal/world"
)

func TestRecordingUpdatesTotalsAndEntries(t *testing.T) {
	state := world.NewState()
	l := NewLedger(state)

	l.RecordRevenue(1000, "sale")
	l.RecordCOGS(400, "goods")
	l.RecordOpex(100, "rent")
	l.RecordInterest(50, "loan")
	l.RecordTax(75, "quarterly")

	totals := l.Totals()
	if totals.Revenue != 1000 || totals.COGS != 400 || totals.Opex != 100 ||
		totals.Interest != 50 || totals.Taxes != 75 {
		t.Fatalf("totals = %+v", totals)
	}
	if len(l.Entries(0)) != 5 {
		t.Fatalf("entries = %d, want 5", len(l.Entries(0)))
	}
}

func TestNonPositiveAmountsIgnored(t *testing.T) {
	state := world.NewState()
	l := NewLedger(state)

	l.RecordRevenue(0, "zero")
	l.RecordRevenue(-500, "negative")
	l.RecordOpex(-1, "negative")

	if totals := l.Totals(); totals.Revenue != 0 || totals.Opex != 0 {
		t.Fatalf("totals = %+v, want all zero", totals)
	}
	if len(l.Entries(0)) != 0 {
		t.Fatal("non-positive amounts must not produce entries")
	}
}

func TestEntriesSignAndStamp(t *testing.T) {
	state := world.NewState()
	l := NewLedger(state)

	l.RecordRevenue(100, "sale")
	l.RecordOpex(30, "rent")

	entries := l.Entries(0)
	if entries[0].Amount != 100 {
		t.Errorf("revenue amount = %v, want +100", entries[0].Amount)
	}
	if entries[1].Amount != -30 {
		t.Errorf("opex amount = %v, want -30", entries[1].Amount)
	}
	if entries[0].Day != state.Clock.Day || entries[0].Year != state.Clock.Year {
		t.Errorf("entry stamp = %d/%d/%d", entries[0].Day, entries[0].Month, entries[0].Year)
	}
	if entries[0].ID == "" || entries[0].ID == entries[1].ID {
		t.Error("entry IDs must be unique and non-empty")
	}
}

func TestEntriesLimit(t *testing.T) {
	state := world.NewState()
	l := NewLedger(state)
	for i := 0; i < 10; i++ {
		l.RecordRevenue(1, "sale")
	}
	if got := len(l.Entries(3)); got != 3 {
		t.Fatalf("limited entries = %d, want 3", got)
	}
}

func TestGetPnLDerivation(t *testing.T) {
	state := world.NewState()
	l := NewLedger(state)
	l.RecordRevenue(1000, "")
	l.RecordCOGS(400, "")
	l.RecordOpex(100, "")
	l.RecordInterest(50, "")
	l.RecordTax(75, "")

	pnl := l.GetPnL()
	if pnl.GrossProfit != 600 {
		t.Errorf("gross = %v, want 600", pnl.GrossProfit)
	}
	if pnl.OperatingIncome != 500 {
		t.Errorf("operating = %v, want 500", pnl.OperatingIncome)
	}
	if pnl.PreTaxIncome != 450 {
		t.Errorf("pre-tax = %v, want 450", pnl.PreTaxIncome)
	}
	if pnl.NetIncome != 375 {
		t.Errorf("net = %v, want 375", pnl.NetIncome)
	}
}

func TestBalanceSheetEquity(t *testing.T) {
	state := world.NewState()
	state.Businesses = nil // isolate from starter inventory
	state.Player.Cash = 1000
	state.Player.AssetsValue = 200
	state.Player.LiabilitiesValue = 300
	l := NewLedger(state)

	bs := l.GetBalanceSheet(150, nil)
	if bs.TotalAssets != 1200 {
		t.Errorf("total assets = %v, want 1200", bs.TotalAssets)
	}
	if bs.TotalLiabilities != 450 {
		t.Errorf("total liabilities = %v, want 450", bs.TotalLiabilities)
	}
	if bs.Equity != 750 {
		t.Errorf("equity = %v, want 750", bs.Equity)
	}
}

func TestInventoryValuation(t *testing.T) {
	biz := world.NewBusiness("BIZ-9", world.SectorManufacturing, "City A")
	biz.InputsStock["parts"] = 10
	biz.InputsStock["exotic"] = 4 // unknown input priced at 1.0
	biz.FinishedGoods = 5
	biz.UnitCost = 7

	got := inventoryValuation(biz, map[string]float64{"parts": 4.0})
	want := 10*4.0 + 4*1.0 + 5*7.0
	if got != want {
		t.Fatalf("valuation = %v, want %v", got, want)
	}
}
