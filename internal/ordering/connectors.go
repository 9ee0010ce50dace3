package ordering

import (
	"context"
	"fmt"
	"strings"

	"boardsync/internal/model"

	"github.com/google/uuid"
)

type ConnectorDraft struct {
	BoardID     uuid.UUID
	FromElement string
	ToElement   string
	LineStyle   string
	ArrowStyle  string
	Color       string
	Label       string
	FromX       float64
	FromY       float64
	ToX         float64
	ToY         float64
}

// ConnectorPatch holds optional connector updates; nil means unchanged.
type ConnectorPatch struct {
	FromElement *string
	ToElement   *string
	LineStyle   *string
	ArrowStyle  *string
	Color       *string
	Label       *string
	FromX       *float64
	FromY       *float64
	ToX         *float64
	ToY         *float64
}

var (
	lineStyles  = map[string]bool{model.LineStraight: true, model.LineCurved: true, model.LineOrthogonal: true}
	arrowStyles = map[string]bool{model.ArrowArrow: true, model.ArrowNone: true}
)

func (e *Engine) CreateConnector(ctx context.Context, actor uuid.UUID, draft ConnectorDraft) (*model.Connector, error) {
	from, err := requireText("fromElement", draft.FromElement)
	if err != nil {
		return nil, err
	}
	to, err := requireText("toElement", draft.ToElement)
	if err != nil {
		return nil, err
	}
	if err := checkStyles(draft.LineStyle, draft.ArrowStyle); err != nil {
		return nil, err
	}
	connector := &model.Connector{
		BoardID:     draft.BoardID,
		FromElement: from,
		ToElement:   to,
		LineStyle:   draft.LineStyle,
		ArrowStyle:  draft.ArrowStyle,
		Color:       strings.TrimSpace(draft.Color),
		Label:       draft.Label,
		FromX:       draft.FromX,
		FromY:       draft.FromY,
		ToX:         draft.ToX,
		ToY:         draft.ToY,
		CreatedBy:   actor,
	}
	err = e.run(ctx, "create_connector", func(s *stores) error {
		if err := authorize(ctx, s, draft.BoardID, actor); err != nil {
			return err
		}
		if err := s.connectors.Create(ctx, connector); err != nil {
			return fmt.Errorf("failed to create connector: %w", err)
		}
		return record(ctx, s, draft.BoardID, actor, "connector:created", "added a connector")
	})
	if err != nil {
		return nil, err
	}
	return connector, nil
}

func (e *Engine) ListConnectors(ctx context.Context, actor, boardID uuid.UUID) ([]model.Connector, error) {
	var connectors []model.Connector
	err := e.run(ctx, "list_connectors", func(s *stores) error {
		if err := authorize(ctx, s, boardID, actor); err != nil {
			return err
		}
		var err error
		connectors, err = s.connectors.GetByBoardID(ctx, boardID)
		return err
	})
	return connectors, err
}

func (e *Engine) UpdateConnector(ctx context.Context, actor, id uuid.UUID, patch ConnectorPatch) (*model.Connector, error) {
	var connector *model.Connector
	err := e.run(ctx, "update_connector", func(s *stores) error {
		var err error
		if connector, err = s.connectors.GetByID(ctx, id); err != nil {
			return err
		}
		if err := authorize(ctx, s, connector.BoardID, actor); err != nil {
			return err
		}
		if err := applyConnectorPatch(connector, patch); err != nil {
			return err
		}
		if err := s.connectors.Update(ctx, connector); err != nil {
			return fmt.Errorf("failed to update connector: %w", err)
		}
		return record(ctx, s, connector.BoardID, actor, "connector:updated", "updated a connector")
	})
	if err != nil {
		return nil, err
	}
	return connector, nil
}

// DeleteConnector returns the deleted connector.
func (e *Engine) DeleteConnector(ctx context.Context, actor, id uuid.UUID) (*model.Connector, error) {
	var connector *model.Connector
	err := e.run(ctx, "delete_connector", func(s *stores) error {
		var err error
		if connector, err = s.connectors.GetByID(ctx, id); err != nil {
			return err
		}
		if err := authorize(ctx, s, connector.BoardID, actor); err != nil {
			return err
		}
		if err := s.connectors.Delete(ctx, id); err != nil {
			return err
		}
		return record(ctx, s, connector.BoardID, actor, "connector:deleted", "removed a connector")
	})
	if err != nil {
		return nil, err
	}
	return connector, nil
}

func applyConnectorPatch(c *model.Connector, p ConnectorPatch) error {
	var err error
	if p.FromElement != nil {
		if c.FromElement, err = requireText("fromElement", *p.FromElement); err != nil {
			return err
		}
	}
	if p.ToElement != nil {
		if c.ToElement, err = requireText("toElement", *p.ToElement); err != nil {
			return err
		}
	}
	if p.LineStyle != nil {
		c.LineStyle = *p.LineStyle
	}
	if p.ArrowStyle != nil {
		c.ArrowStyle = *p.ArrowStyle
	}
	if err := checkStyles(c.LineStyle, c.ArrowStyle); err != nil {
		return err
	}
	if p.Color != nil && strings.TrimSpace(*p.Color) != "" {
		c.Color = strings.TrimSpace(*p.Color)
	}
	if p.Label != nil {
		c.Label = *p.Label
	}
	for dst, src := range map[*float64]*float64{&c.FromX: p.FromX, &c.FromY: p.FromY, &c.ToX: p.ToX, &c.ToY: p.ToY} {
		if src != nil {
			*dst = *src
		}
	}
	return nil
}

// checkStyles accepts empty values; the model fills in defaults.
func checkStyles(line, arrow string) error {
	if line != "" && !lineStyles[line] {
		return fmt.Errorf("%w: unknown line style %q", ErrInvalid, line)
	}
	if arrow != "" && !arrowStyles[arrow] {
		return fmt.Errorf("%w: unknown arrow style %q", ErrInvalid, arrow)
	}
	return nil
}
