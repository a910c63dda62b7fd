package model

// ContractTag is the exported tag for one token contract.
type ContractTag struct {
	ContractAddress string `json:"Contract Address" yaml:"Contract Address"`
	PublicNameTag   string `json:"Public Name Tag" yaml:"Public Name Tag"`
	ProjectName     string `json:"Project Name" yaml:"Project Name"`
	UIWebsiteLink   string `json:"UI/Website Link" yaml:"UI/Website Link"`
	PublicNote      string `json:"Public Note" yaml:"Public Note"`
}
