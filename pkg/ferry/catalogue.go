package ferry

const (
	RouteBainbridge       RouteCode = 1
	RouteEdmonds          RouteCode = 1 << 2
	RouteMukilteo         RouteCode = 1 << 3
	RoutePortTownsend     RouteCode = 1 << 4
	RouteFauntleroySouth  RouteCode = 1 << 5
	RouteFauntleroyVashon RouteCode = 1 << 6
	RouteVashonSouthworth RouteCode = 1 << 7
	RouteBremerton        RouteCode = 1 << 8
	RoutePointDefiance    RouteCode = 1 << 9
	RouteFridayHarbor     RouteCode = 1 << 10
	RouteOrcas            RouteCode = 1 << 11
)

func defaultRoutes() []*Route {
	return []*Route{
		NewRoute(RouteBainbridge, 7, 3, "bainbridge", "bainbridge"),
		NewRoute(RouteEdmonds, 8, 12, "edmonds", "edmonds"),
		NewRoute(RouteMukilteo, 14, 5, "mukilteo", "mukilteo"),
		NewRoute(RoutePortTownsend, 11, 17, "pt townsend", "pt townsend"),
		NewRoute(RouteFauntleroySouth, 9, 20, "fauntleroy-southworth", "southworth-fauntleroy"),
		NewRoute(RouteFauntleroyVashon, 9, 22, "fauntleroy-vashon", "vashon-fauntleroy"),
		NewRoute(RouteVashonSouthworth, 22, 20, "vashon-southworth", "southworth-vashon"),
		NewRoute(RouteBremerton, 7, 4, "bremerton", "bremerton"),
		NewRoute(RoutePointDefiance, 21, 16, "vashon-pt defiance", "pt defiance-vashon"),
		NewRoute(RouteFridayHarbor, 1, 10, "friday harbor", "friday harbor"),
		NewRoute(RouteOrcas, 1, 15, "orcas", "orcas"),
	}
}

func defaultTerminals() []*Terminal {
	return []*Terminal{
		NewTerminal(1, "Anacortes", "48.502220, -122.679455"),
		NewTerminal(3, "Bainbridge Island", "47.623046, -122.511377"),
		NewTerminal(4, "Bremerton", "47.564990, -122.627012"),
		NewTerminal(5, "Clinton", "47.974785, -122.352139"),
		NewTerminal(7, "Seattle", "47.601767, -122.336089"),
		NewTerminal(8, "Edmonds", "47.811240, -122.382631"),
		NewTerminal(9, "Fauntleroy", "47.523115, -122.392952"),
		NewTerminal(10, "Friday Harbor", "48.535010, -123.014645"),
		NewTerminal(11, "Coupeville", "48.160592, -122.674305"),
		NewTerminal(12, "Kingston", "47.796943, -122.496785"),
		NewTerminal(13, "Lopez Island", "48.570447, -122.883646"),
		NewTerminal(14, "Mukilteo", "47.947758, -122.304138"),
		NewTerminal(15, "Orcas Island", "48.597971, -122.943985"),
		NewTerminal(16, "Point Defiance", "47.305414, -122.514123"),
		NewTerminal(17, "Port Townsend", "48.112648, -122.760715"),
		NewTerminal(18, "Shaw Island", "48.583991, -122.929351"),
		NewTerminal(20, "Southworth", "47.512130, -122.500970"),
		NewTerminal(21, "Tahlequah", "47.333023, -122.506999"),
		NewTerminal(22, "Vashon Island", "47.508616, -122.464127"),
	}
}
