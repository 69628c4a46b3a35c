package model

// EdgeEvent is the payload CloudFront sends to a Lambda@Edge function.
type EdgeEvent struct {
	Records []EdgeRecord `json:"Records"`
}

type EdgeRecord struct {
	CF EdgeCloudFront `json:"cf"`
}

type EdgeCloudFront struct {
	Config   EdgeConfig          `json:"config"`
	Request  EdgeRequest         `json:"request"`
	Response *EdgeOriginResponse `json:"response,omitempty"`
}

type EdgeConfig struct {
	DistributionDomainName string `json:"distributionDomainName"`
	DistributionID         string `json:"distributionId"`
	EventType              string `json:"eventType"`
	RequestID              string `json:"requestId"`
}

type EdgeRequest struct {
	ClientIP    string                   `json:"clientIp"`
	Method      string                   `json:"method"`
	URI         string                   `json:"uri"`
	Querystring string                   `json:"querystring"`
	Headers     map[string][]HeaderValue `json:"headers"`
}

// EdgeOriginResponse is the origin's answer as seen on origin-response
// events. CloudFront sends the status as a string.
type EdgeOriginResponse struct {
	Status            string                   `json:"status"`
	StatusDescription string                   `json:"statusDescription"`
	Headers           map[string][]HeaderValue `json:"headers"`
}

// RequestURI returns the URI of the first record, or "" when the event
// carries no records.
func (e EdgeEvent) RequestURI() string {
	if len(e.Records) == 0 {
		return ""
	}
	return e.Records[0].CF.Request.URI
}
