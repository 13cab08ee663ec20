package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
	"github.com/vibhu2208/hrms-backend-sub007/internal/repository"
	"github.com/vibhu2208/hrms-backend-sub007/utils"
)

func (c *cli) recordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Manage roles, clients, employee requests and team meetings",
	}
	cmd.AddCommand(c.rolesCmd(), c.clientsCmd(), c.requestsCmd(), c.meetingsCmd())
	return cmd
}

func (c *cli) rolesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "roles", Short: "Tenant roles and permissions"}

	list := &cobra.Command{
		Use:  "list",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withTenant(cmd, func(ctx context.Context, db *mongo.Database) error {
				roles, err := repository.NewRoleRepository(db).FindAll(ctx, c.tenant)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), c.asJSON, roles, func(w io.Writer) error { return printRoles(w, roles) })
			})
		},
	}

	var (
		role   models.Role
		perms  []string
		parent string
	)
	create := &cobra.Command{
		Use:  "create",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePermissions(perms)
			if err != nil {
				return err
			}
			role.Permissions = p
			return c.withTenant(cmd, func(ctx context.Context, db *mongo.Database) error {
				repo := repository.NewRoleRepository(db)
				if parent != "" {
					pr, err := repo.FindBySlug(ctx, c.tenant, models.Slugify(parent))
					if err != nil {
						return fmt.Errorf("parent role %q: %w", parent, err)
					}
					role.ParentRole = &pr.ID
				}
				role.TenantID = c.tenant
				role.ApplyDefaults(time.Now())
				if err := role.Validate(); err != nil {
					return err
				}
				if err := repo.Insert(ctx, &role); err != nil {
					return err
				}
				c.log.Info("role created", zap.String("slug", role.Slug))
				fmt.Fprintf(cmd.OutOrStdout(), "created role %s (%s)\n", role.Slug, role.ID.Hex())
				return nil
			})
		},
	}
	f := create.Flags()
	f.StringVar(&role.Name, "name", "", "role name")
	f.StringVar(&role.Slug, "slug", "", "slug (derived from name when empty)")
	f.StringVar(&role.Description, "description", "", "description")
	f.StringVar(&role.Scope, "scope", "", "self, team, department or tenant (default self)")
	f.StringVar(&parent, "parent", "", "slug of the parent role")
	f.StringArrayVar(&perms, "permission", nil, "module:action[,action], repeatable")
	f.BoolVar(&role.IsSystem, "system", false, "mark as a system role")
	_ = create.MarkFlagRequired("name")

	effective := &cobra.Command{
		Use:   "effective <slug>",
		Short: "Permissions of a role including those inherited from its parents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withTenant(cmd, func(ctx context.Context, db *mongo.Database) error {
				roles, err := repository.NewRoleRepository(db).FindAll(ctx, c.tenant)
				if err != nil {
					return err
				}
				byID := make(map[bson.ObjectID]models.Role, len(roles))
				var target *models.Role
				for i, r := range roles {
					byID[r.ID] = r
					if r.Slug == models.Slugify(args[0]) {
						target = &roles[i]
					}
				}
				if target == nil {
					return fmt.Errorf("role %q: %w", args[0], repository.ErrNotFound)
				}
				perms, err := models.EffectivePermissions(byID, target.ID)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), c.asJSON, perms, func(w io.Writer) error {
					for _, p := range perms {
						fmt.Fprintf(w, "%s\t%v\n", p.Module, p.Actions)
					}
					return nil
				})
			})
		},
	}

	cmd.AddCommand(list, create, effective)
	cmd.AddCommand(idCmds(c, "role", func(db *mongo.Database) byID[models.Role] {
		return repository.NewRoleRepository(db)
	})...)
	return cmd
}

func (c *cli) clientsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "clients", Short: "Customer companies"}

	list := &cobra.Command{
		Use:  "list",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withTenant(cmd, func(ctx context.Context, db *mongo.Database) error {
				clients, err := repository.NewClientRepository(db).FindAll(ctx)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), c.asJSON, clients, func(w io.Writer) error { return printClients(w, clients) })
			})
		},
	}

	var client models.Client
	create := &cobra.Command{
		Use:  "create",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client.ApplyDefaults(time.Now())
			if err := client.Validate(); err != nil {
				return err
			}
			return c.withTenant(cmd, func(ctx context.Context, db *mongo.Database) error {
				if err := repository.NewClientRepository(db).Insert(ctx, &client); err != nil {
					return err
				}
				c.log.Info("client created", zap.String("code", client.Code))
				fmt.Fprintf(cmd.OutOrStdout(), "created client %s (%s)\n", client.Code, client.ID.Hex())
				return nil
			})
		},
	}
	f := create.Flags()
	f.StringVar(&client.Name, "name", "", "company name")
	f.StringVar(&client.Code, "code", "", "unique client code")
	f.StringVar(&client.Contact.Name, "contact-name", "", "contact person")
	f.StringVar(&client.Contact.Email, "contact-email", "", "contact email")
	f.StringVar(&client.Contact.Phone, "contact-phone", "", "contact phone")
	f.StringVar(&client.Billing.Country, "country", "", "billing country")
	f.StringVar(&client.Billing.Currency, "currency", "", "billing currency (default INR)")
	f.IntVar(&client.Billing.PaymentTermsDays, "payment-terms", 0, "payment terms in days (default 30)")
	f.StringVar(&client.Billing.TaxID, "tax-id", "", "tax id")
	f.StringVar(&client.Industry, "industry", "", "industry")
	f.StringVar(&client.Website, "website", "", "website")
	f.StringVar(&client.Status, "status", "", "active, inactive or prospect (default active)")
	f.StringVar(&client.Notes, "notes", "", "notes")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("code")

	status := &cobra.Command{
		Use:  "status <code> <status>",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := models.ValidClientStatus(args[1]); err != nil {
				return err
			}
			return c.withTenant(cmd, func(ctx context.Context, db *mongo.Database) error {
				repo := repository.NewClientRepository(db)
				cl, err := repo.FindByCode(ctx, args[0])
				if err != nil {
					return err
				}
				if err := repo.SetStatus(ctx, cl.ID, args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "client %s: %s -> %s\n", cl.Code, cl.Status, args[1])
				return nil
			})
		},
	}

	cmd.AddCommand(list, create, status)
	cmd.AddCommand(idCmds(c, "client", func(db *mongo.Database) byID[models.Client] {
		return repository.NewClientRepository(db)
	})...)
	return cmd
}

func (c *cli) requestsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "requests", Short: "Employee requests (tickets)"}

	var statusFilter string
	list := &cobra.Command{
		Use:  "list",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withTenant(cmd, func(ctx context.Context, db *mongo.Database) error {
				reqs, err := repository.NewEmployeeRequestRepository(db).FindAll(ctx, statusFilter)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), c.asJSON, reqs, func(w io.Writer) error { return printRequests(w, reqs) })
			})
		},
	}
	list.Flags().StringVar(&statusFilter, "status", "", "only requests in this status")

	var (
		req      models.EmployeeRequest
		employee string
	)
	create := &cobra.Command{
		Use:  "create",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			emp, err := utils.Oid(employee)
			if err != nil {
				return err
			}
			req.Employee = emp
			req.ApplyDefaults(time.Now())
			if err := req.Validate(); err != nil {
				return err
			}
			return c.withTenant(cmd, func(ctx context.Context, db *mongo.Database) error {
				if err := repository.NewEmployeeRequestRepository(db).Insert(ctx, &req); err != nil {
					return err
				}
				c.log.Info("request created", zap.String("number", req.RequestNumber))
				fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", req.RequestNumber)
				return nil
			})
		},
	}
	f := create.Flags()
	f.StringVar(&employee, "employee", "", "employee id")
	f.StringVar(&req.RequestType, "type", "", "request type (default other)")
	f.StringVar(&req.Subject, "subject", "", "subject")
	f.StringVar(&req.Description, "description", "", "description")
	f.StringVar(&req.Priority, "priority", "", "low, medium, high or urgent (default medium)")
	_ = create.MarkFlagRequired("employee")
	_ = create.MarkFlagRequired("subject")

	var author, message string
	comment := &cobra.Command{
		Use:  "comment <requestNumber>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := utils.Oid(author)
			if err != nil {
				return err
			}
			return c.updateRequest(cmd, args[0], func(r *models.EmployeeRequest, now time.Time) error {
				return r.AddComment(a, message, now)
			})
		},
	}
	comment.Flags().StringVar(&author, "author", "", "author user id")
	comment.Flags().StringVar(&message, "message", "", "comment text")
	_ = comment.MarkFlagRequired("author")
	_ = comment.MarkFlagRequired("message")

	var assignee string
	assign := &cobra.Command{
		Use:  "assign <requestNumber>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := utils.Oid(assignee)
			if err != nil {
				return err
			}
			return c.updateRequest(cmd, args[0], func(r *models.EmployeeRequest, now time.Time) error {
				return r.Assign(to, now)
			})
		},
	}
	assign.Flags().StringVar(&assignee, "to", "", "assignee user id")
	_ = assign.MarkFlagRequired("to")

	status := &cobra.Command{
		Use:  "status <requestNumber> <status>",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.updateRequest(cmd, args[0], func(r *models.EmployeeRequest, now time.Time) error {
				return r.SetStatus(args[1], now)
			})
		},
	}

	cmd.AddCommand(list, create, comment, assign, status)
	cmd.AddCommand(idCmds(c, "request", func(db *mongo.Database) byID[models.EmployeeRequest] {
		return repository.NewEmployeeRequestRepository(db)
	})...)
	return cmd
}

// updateRequest loads a request by number, applies change and writes it back.
func (c *cli) updateRequest(cmd *cobra.Command, number string, change func(*models.EmployeeRequest, time.Time) error) error {
	if _, _, err := models.ParseRequestNumber(number); err != nil {
		return err
	}
	return c.withTenant(cmd, func(ctx context.Context, db *mongo.Database) error {
		repo := repository.NewEmployeeRequestRepository(db)
		req, err := repo.FindByNumber(ctx, number)
		if err != nil {
			return err
		}
		if err := change(&req, time.Now()); err != nil {
			return err
		}
		if err := repo.Replace(ctx, req); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: status %s, %d comments\n", req.RequestNumber, req.Status, len(req.Comments))
		return nil
	})
}

func (c *cli) meetingsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "meetings", Short: "Team meetings"}

	var from string
	list := &cobra.Command{
		Use:   "list",
		Short: "Meetings from --from onwards (default now)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			if from != "" {
				var err error
				if start, err = parseWhen(from); err != nil {
					return err
				}
			}
			return c.withTenant(cmd, func(ctx context.Context, db *mongo.Database) error {
				meetings, err := repository.NewTeamMeetingRepository(db).FindUpcoming(ctx, start)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), c.asJSON, meetings, func(w io.Writer) error { return printMeetings(w, meetings) })
			})
		},
	}
	list.Flags().StringVar(&from, "from", "", "start time")

	var (
		m                      models.TeamMeeting
		organizer, project, at string
		attendees              []string
	)
	create := &cobra.Command{
		Use:  "create",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if m.Organizer, err = utils.Oid(organizer); err != nil {
				return err
			}
			if m.Attendees, err = utils.Oids(attendees); err != nil {
				return err
			}
			if m.Project, err = utils.OptionalOid(project); err != nil {
				return err
			}
			if m.ScheduledAt, err = parseWhen(at); err != nil {
				return err
			}
			m.ApplyDefaults(time.Now())
			if err := m.Validate(); err != nil {
				return err
			}
			return c.withTenant(cmd, func(ctx context.Context, db *mongo.Database) error {
				if err := repository.NewTeamMeetingRepository(db).Insert(ctx, &m); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created meeting %s at %s (%d attendees)\n", m.ID.Hex(), m.ScheduledAt.Format(time.RFC3339), len(m.Attendees))
				return nil
			})
		},
	}
	f := create.Flags()
	f.StringVar(&m.Title, "title", "", "title")
	f.StringVar(&m.Description, "description", "", "description")
	f.StringVar(&organizer, "organizer", "", "organizer user id")
	f.StringArrayVar(&attendees, "attendee", nil, "attendee user id, repeatable")
	f.StringVar(&project, "project", "", "project id")
	f.StringVar(&at, "at", "", "start time")
	f.IntVar(&m.DurationMinutes, "duration", 0, "minutes (default 30)")
	f.StringVar(&m.Location, "location", "", "location")
	f.StringVar(&m.MeetingLink, "link", "", "meeting link")
	f.StringArrayVar(&m.Agenda, "agenda", nil, "agenda item, repeatable")
	_ = create.MarkFlagRequired("title")
	_ = create.MarkFlagRequired("organizer")
	_ = create.MarkFlagRequired("at")

	status := &cobra.Command{
		Use:  "status <meetingId> <status>",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := utils.Oid(args[0])
			if err != nil {
				return err
			}
			if err := models.ValidMeetingStatus(args[1]); err != nil {
				return err
			}
			return c.withTenant(cmd, func(ctx context.Context, db *mongo.Database) error {
				if err := repository.NewTeamMeetingRepository(db).SetStatus(ctx, id, args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "meeting %s is now %s\n", id.Hex(), args[1])
				return nil
			})
		},
	}

	cmd.AddCommand(list, create, status)
	cmd.AddCommand(idCmds(c, "meeting", func(db *mongo.Database) byID[models.TeamMeeting] {
		return repository.NewTeamMeetingRepository(db)
	})...)
	return cmd
}

type byID[T any] interface {
	FindByID(ctx context.Context, id bson.ObjectID) (T, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}

// idCmds builds "show <id>" and "delete <id>" for one record kind. Delete
// prints the record and only removes it with --apply.
func idCmds[T any](c *cli, kind string, open func(*mongo.Database) byID[T]) []*cobra.Command {
	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one " + kind + " as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := utils.Oid(args[0])
			if err != nil {
				return err
			}
			return c.withTenant(cmd, func(ctx context.Context, db *mongo.Database) error {
				rec, err := open(db).FindByID(ctx, id)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), true, rec, nil)
			})
		},
	}

	var apply bool
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one " + kind,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := utils.Oid(args[0])
			if err != nil {
				return err
			}
			return c.withTenant(cmd, func(ctx context.Context, db *mongo.Database) error {
				repo := open(db)
				rec, err := repo.FindByID(ctx, id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if err := render(out, true, rec, nil); err != nil {
					return err
				}
				if !apply {
					c.dryRun(out)
					return nil
				}
				if err := repo.Delete(ctx, id); err != nil {
					return err
				}
				c.log.Info("record deleted", zap.String("kind", kind), zap.String("id", id.Hex()))
				fmt.Fprintf(out, "deleted %s %s\n", kind, id.Hex())
				return nil
			})
		},
	}
	del.Flags().BoolVar(&apply, "apply", false, "delete the "+kind)
	return []*cobra.Command{show, del}
}
