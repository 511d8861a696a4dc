package campus

// Endpoints names every second-course URL the agent touches. Tests
// point these at an httptest server; production uses DefaultEndpoints.
type Endpoints struct {
	// SSORedirect is the authserver login URL carrying the sc service
	// parameter. An expired session fetching it lands back on this
	// exact URL; a live one is redirected into the site.
	SSORedirect string

	ActivityList   string
	ActivityDetail string
	MyScore        string
	MyActivity     string
	ApplyActivity  string

	// ImageBase prefixes relative image paths found in detail pages.
	ImageBase string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		SSORedirect:    "https://authserver.sit.edu.cn/authserver/login?service=http%3A%2F%2Fsc.sit.edu.cn%2F",
		ActivityList:   "http://sc.sit.edu.cn/public/activity/activityList.action",
		ActivityDetail: "http://sc.sit.edu.cn/public/activity/activityDetail.action",
		MyScore:        "http://sc.sit.edu.cn/public/pcenter/scoreDetail.action",
		MyActivity:     "http://sc.sit.edu.cn/public/pcenter/activityOrderList.action?pageSize=200",
		ApplyActivity:  "http://sc.sit.edu.cn/public/pcenter/applyActivity.action",
		ImageBase:      "http://sc.sit.edu.cn",
	}
}
