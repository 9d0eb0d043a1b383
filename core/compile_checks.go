package core

import "encoding/json"

var (
	_ Registry        = (*ProviderRegistry)(nil)
	_ ConfigProvider  = (*CfgxConfigProvider)(nil)
	_ OptionsResolver = GoOptionsResolver{}
	_ json.Marshaler  = FlatSignInBody{}
	_ json.Marshaler  = FlexTime{}
	_ json.Unmarshaler = (*FlexTime)(nil)
	_ error           = APIError{}
)
