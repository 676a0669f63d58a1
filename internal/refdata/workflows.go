package refdata

import "refdesk/internal/types"

var workflows = []types.Workflow{
	{
		ID:          "w1",
		Title:       "Creating and managing power circuits",
		Description: "How to efficiently create and manage power circuits for equipment and lighting fixtures in Revit.",
		Steps: []types.WorkflowStep{
			{Description: "Select the equipment or fixture to connect.", Timecode: "0m15s"},
			{Description: "Click the Power tab to create a new circuit.", Timecode: "0m30s"},
			{Description: "Pick the panel the circuit will be assigned to.", Timecode: "0m45s"},
			{Description: "Edit the wire path with the Arc or Chamfer tools.", Timecode: "1m10s"},
			{Description: "Check loads and circuit parameters in the System Browser.", Timecode: "1m35s"},
		},
		VideoRef: "https://www.youtube.com/watch?v=n4r9p63-a_I",
		Scope:    types.ScopeRevit,
	},
	{
		ID:          "w2",
		Title:       "Coordinating HVAC and electrical systems",
		Description: "Finding and resolving clashes between HVAC ductwork and electrical cable trays.",
		Steps: []types.WorkflowStep{
			{Description: "Run Interference Check from the Collaborate tab.", Timecode: "0m22s"},
			{Description: "Set the categories to check: Ducts and Cable Trays.", Timecode: "0m40s"},
			{Description: "Review the interference report.", Timecode: "1m05s"},
			{Description: "Use Align (AL) to adjust tray or duct elevations.", Timecode: "1m30s"},
			{Description: "Re-run the check to confirm the clash is resolved.", Timecode: "2m00s"},
		},
		VideoRef: "https://www.youtube.com/watch?v=d_k3d5g_z0s",
		Scope:    types.ScopeRevit,
	},
	{
		ID:          "w3",
		Title:       "Building a 3D model from 2D drawings",
		Description: "Step by step import of a 2D AutoCAD drawing and modeling on top of it in SketchUp.",
		Steps: []types.WorkflowStep{
			{Description: "Import the DWG/DXF file: File > Import.", Timecode: "0m10s"},
			{Description: "Trace the wall outlines with the Line tool (L).", Timecode: "0m50s"},
			{Description: "Use Push/Pull (P) to give the walls volume.", Timecode: "1m25s"},
			{Description: "Create components for windows and doors for reuse.", Timecode: "2m10s"},
		},
		VideoRef: "https://www.youtube.com/watch?v=O57B4A8iIuM",
		Scope:    types.ScopeSketchUp,
	},
	{
		ID:          "w4",
		Title:       "Setting up dynamic blocks",
		Description: "How to author and configure dynamic blocks in AutoCAD.",
		Steps: []types.WorkflowStep{
			{Description: "Create the block geometry.", Timecode: "0m30s"},
			{Description: "Open the block editor with BEDIT.", Timecode: "1m00s"},
			{Description: "Add parameters (Linear, Rotation) from the Block Authoring palette.", Timecode: "1m45s"},
			{Description: "Add actions (Stretch, Rotate) and bind them to parameters.", Timecode: "2m30s"},
			{Description: "Save and test the block.", Timecode: "3m15s"},
		},
		VideoRef: "https://www.youtube.com/watch?v=M-b_Lcr33vE",
		Scope:    types.ScopeAutoCAD,
	},
}
