package postgresrepo

import (
	"testing"

	"github.com/corray333/backend-labs/storefront/internal/service/models/settings"
	"github.com/spf13/cast"
)

func TestSettingsValuesRoundTrip(t *testing.T) {
	want := settings.Default()
	want.DeliveryFeeCents = 350
	want.AcceptingOrders = false
	want.EstimatedPickupMinutes = 25

	values := map[string]string{}
	for k, v := range toValues(want) {
		values[k] = cast.ToString(v)
	}

	if got := fromValues(values); got != want {
		t.Errorf("fromValues() = %+v, want %+v", got, want)
	}
}

func TestSettingsMissingKeysKeepDefaults(t *testing.T) {
	got := fromValues(map[string]string{keyMinOrderAmountCents: "2000"})

	want := settings.Default()
	want.MinOrderAmountCents = 2000
	if got != want {
		t.Errorf("fromValues() = %+v, want %+v", got, want)
	}
}
