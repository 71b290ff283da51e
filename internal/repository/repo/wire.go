package repo

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewCampaign,
	NewDrawRecord,
	NewPreset,
	NewConfig,
	NewPoints,
	NewInventory,
	NewSettle,
)
