package refdata

import "refdesk/internal/types"

var hotkeys = []types.Hotkey{
	{ID: "h1", Command: "Conduit", Keys: "CN", Description: "Draw an electrical conduit run.", Scope: types.ScopeRevit},
	{ID: "h2", Command: "Cable Tray", Keys: "CT", Description: "Draw a cable tray.", Scope: types.ScopeRevit},
	{ID: "h3", Command: "Electrical Equipment", Keys: "EE", Description: "Place electrical equipment (panels, UPS, generators).", Scope: types.ScopeRevit},
	{ID: "h4", Command: "Lighting Fixture", Keys: "LF", Description: "Place a lighting fixture.", Scope: types.ScopeRevit},
	{ID: "h5", Command: "Electrical Fixture", Keys: "EF", Description: "Place receptacles, switches and other fittings.", Scope: types.ScopeRevit},
	{ID: "h6", Command: "Wire", Keys: "W", Description: "Draw an electrical wire.", Scope: types.ScopeRevit},
	{ID: "h7", Command: "Switch System", Keys: "SS", Description: "Create or edit a switch system.", Scope: types.ScopeRevit},
	{ID: "h8", Command: "Power Circuit", Keys: "PC", Description: "Create a power circuit.", Scope: types.ScopeRevit},
	{ID: "h9", Command: "Duct", Keys: "DT", Description: "Draw ductwork for air systems.", Scope: types.ScopeRevit},
	{ID: "h10", Command: "Flex Duct", Keys: "DF", Description: "Draw a flexible duct.", Scope: types.ScopeRevit},
	{ID: "h11", Command: "Air Terminal", Keys: "AT", Description: "Place a diffuser or ventilation grille.", Scope: types.ScopeRevit},
	{ID: "h12", Command: "Mechanical Equipment", Keys: "ME", Description: "Place mechanical equipment (AC units, fans).", Scope: types.ScopeRevit},
	{ID: "h13", Command: "Align", Keys: "AL", Description: "Align one or more elements.", Scope: types.ScopeRevit},
	{ID: "h14", Command: "Move", Keys: "MV", Description: "Move the selected element.", Scope: types.ScopeRevit},
	{ID: "h15", Command: "Copy", Keys: "CO", Description: "Copy the selected element.", Scope: types.ScopeRevit},
	{ID: "h16", Command: "Rotate", Keys: "RO", Description: "Rotate the selected element.", Scope: types.ScopeRevit},
	{ID: "h17", Command: "Create Similar", Keys: "CS", Description: "Create an element similar to the selection.", Scope: types.ScopeRevit},
	{ID: "h18", Command: "Visibility/Graphics", Keys: "VG / VV", Description: "Open the visibility/graphics dialog.", Scope: types.ScopeRevit},
	{ID: "h19", Command: "Thin Lines", Keys: "TL", Description: "Toggle line-weight display.", Scope: types.ScopeRevit},
	{ID: "h20", Command: "Section", Keys: "TX", Description: "Create a section view.", Scope: types.ScopeRevit},
	{ID: "h21", Command: "Line", Keys: "L", Description: "Create a line.", Scope: types.ScopeSketchUp},
	{ID: "h22", Command: "Rectangle", Keys: "R", Description: "Draw a rectangle.", Scope: types.ScopeSketchUp},
	{ID: "h23", Command: "Circle", Keys: "C", Description: "Draw a circle.", Scope: types.ScopeSketchUp},
	{ID: "h24", Command: "Push/Pull", Keys: "P", Description: "Extrude or press a face.", Scope: types.ScopeSketchUp},
	{ID: "h25", Command: "Move", Keys: "M", Description: "Move, stretch or copy objects.", Scope: types.ScopeSketchUp},
	{ID: "h26", Command: "Rotate", Keys: "Q", Description: "Rotate, stretch, distort or copy objects.", Scope: types.ScopeSketchUp},
	{ID: "h27", Command: "Scale", Keys: "S", Description: "Scale or stretch selected objects.", Scope: types.ScopeSketchUp},
	{ID: "h28", Command: "Offset", Keys: "F", Description: "Create copies of lines at a uniform distance.", Scope: types.ScopeSketchUp},
	{ID: "h29", Command: "Line", Keys: "L", Description: "Create a straight line segment.", Scope: types.ScopeAutoCAD},
	{ID: "h30", Command: "Circle", Keys: "C", Description: "Create a circle.", Scope: types.ScopeAutoCAD},
	{ID: "h31", Command: "Copy", Keys: "CO / CP", Description: "Copy objects.", Scope: types.ScopeAutoCAD},
	{ID: "h32", Command: "Move", Keys: "M", Description: "Move objects.", Scope: types.ScopeAutoCAD},
	{ID: "h33", Command: "Rotate", Keys: "RO", Description: "Rotate objects around a base point.", Scope: types.ScopeAutoCAD},
	{ID: "h34", Command: "Trim", Keys: "TR", Description: "Trim objects to the edges of other objects.", Scope: types.ScopeAutoCAD},
	{ID: "h35", Command: "Extend", Keys: "EX", Description: "Extend objects to the edges of other objects.", Scope: types.ScopeAutoCAD},
	{ID: "h36", Command: "Erase", Keys: "E", Description: "Remove objects from the drawing.", Scope: types.ScopeAutoCAD},
}
