package status

// The forge extension has two generations: the FML "modinfo" object on
// 1.7-1.12 servers, and the "forgeData" object with channel negotiation
// data on 1.13+. Either may appear; both absent simply means unmodded.

type wireModInfo struct {
	Type    string `json:"type"`
	ModList []struct {
		ModID   string `json:"modid"`
		Version string `json:"version"`
	} `json:"modList"`
}

type wireForgeData struct {
	Channels []struct {
		Res      string `json:"res"`
		Version  string `json:"version"`
		Required bool   `json:"required"`
	} `json:"channels"`
	Mods []struct {
		ModID     string `json:"modId"`
		ModMarker string `json:"modmarker"`
	} `json:"mods"`
	FMLNetworkVersion int32 `json:"fmlNetworkVersion"`
	Truncated         bool  `json:"truncated"`
}

// decodeForge fills resp.Mods and resp.Channels from whichever forge
// payload the server sent, preserving the advertised order.
func decodeForge(wire *wireStatus, resp *Response) {
	if wire.ForgeData != nil {
		for _, m := range wire.ForgeData.Mods {
			resp.Mods = append(resp.Mods, Mod{ID: m.ModID, Version: m.ModMarker})
		}
		for _, c := range wire.ForgeData.Channels {
			resp.Channels = append(resp.Channels, Channel{
				Name:     c.Res,
				Version:  c.Version,
				Required: c.Required,
			})
		}
		return
	}

	if wire.ModInfo != nil {
		for _, m := range wire.ModInfo.ModList {
			resp.Mods = append(resp.Mods, Mod{ID: m.ModID, Version: m.Version})
		}
	}
}
